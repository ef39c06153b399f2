package analytics

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wbdash/internal/domain/model"
)

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// linearDataset builds y = 3*a - 2*b + 1 over n rows spread across countries.
func linearDataset(n int) model.Dataset {
	ds := model.Dataset{Features: []string{"a", "b"}, Target: "y"}
	codes := []string{"GT", "HN", "SV"}
	for i := 0; i < n; i++ {
		a := float64(i)
		b := float64((i * 7) % 5)
		y := 3*a - 2*b + 1
		ds.Rows = append(ds.Rows, model.FeatureRow{
			CountryCode: codes[i%len(codes)],
			Year:        2000 + i,
			Values:      map[string]float64{"a": a, "b": b},
			Target:      &y,
		})
	}
	return ds
}

func TestScaler(t *testing.T) {
	Convey("Given columns with and without spread", t, func() {
		s, err := FitScaler([][]float64{{1, 5}, {3, 5}})
		So(err, ShouldBeNil)

		Convey("Population sigma is used and zero sigma becomes 1", func() {
			So(s.Mean, ShouldResemble, []float64{2, 5})
			So(s.Scale, ShouldResemble, []float64{1, 1})
			So(s.Transform([][]float64{{3, 7}}), ShouldResemble, [][]float64{{1, 2}})
		})
	})

	Convey("Ragged rows are rejected", t, func() {
		_, err := FitScaler([][]float64{{1, 2}, {3}})
		So(errors.Is(err, ErrShape), ShouldBeTrue)
	})
}

func TestTrainTestSplit(t *testing.T) {
	Convey("Given 10 rows", t, func() {
		a := TrainTestSplit(10, DefaultTestFraction, DefaultSeed)
		b := TrainTestSplit(10, DefaultTestFraction, DefaultSeed)

		Convey("Thirty percent (rounded up) is held out", func() {
			So(a.Test, ShouldHaveLength, 3)
			So(a.Train, ShouldHaveLength, 7)
		})
		Convey("The split is deterministic", func() {
			So(a, ShouldResemble, b)
		})
		Convey("Every row is used exactly once", func() {
			seen := map[int]bool{}
			for _, i := range append(append([]int{}, a.Train...), a.Test...) {
				So(seen[i], ShouldBeFalse)
				seen[i] = true
			}
			So(seen, ShouldHaveLength, 10)
		})
	})

	Convey("Seven rows give three test rows", t, func() {
		So(TrainTestSplit(7, 0.3, 42).Test, ShouldHaveLength, 3)
	})
}

func TestEvaluateMetrics(t *testing.T) {
	Convey("Metrics match hand computation", t, func() {
		m := Evaluate([]float64{1, 2, 3}, []float64{1, 2, 5})
		So(m.MSE, ShouldAlmostEqual, 4.0/3)
		So(m.MAE, ShouldAlmostEqual, 2.0/3)
		So(m.R2, ShouldAlmostEqual, 1-4.0/2)
	})
	Convey("Constant actual values give R2 0", t, func() {
		So(Evaluate([]float64{2, 2}, []float64{1, 3}).R2, ShouldEqual, 0)
	})
}

func TestPCA(t *testing.T) {
	Convey("Given correlated features", t, func() {
		ds := model.Dataset{Features: []string{"a", "b", "c"}}
		for i := 0; i < 6; i++ {
			v := float64(i)
			ds.Rows = append(ds.Rows, model.FeatureRow{
				CountryCode: []string{"GT", "HN"}[i%2],
				Year:        2000 + i,
				Values:      map[string]float64{"a": v, "b": 2*v + 1, "c": float64(i % 3)},
			})
		}

		res, err := PCA(ds, 2)
		So(err, ShouldBeNil)

		Convey("Shapes follow rows, features and components", func() {
			So(res.Scores, ShouldHaveLength, 6)
			So(res.Scores[0], ShouldHaveLength, 2)
			So(res.Loadings, ShouldHaveLength, 3)
			So(res.Countries, ShouldHaveLength, 2)
			So(res.Countries[0].CountryCode, ShouldEqual, "GT")
			So(res.Countries[0].Rows, ShouldEqual, 3)
		})

		Convey("Explained variance ratios are descending and at most 1 in total", func() {
			So(res.ExplainedVarianceRatio[0], ShouldBeGreaterThanOrEqualTo, res.ExplainedVarianceRatio[1])
			So(sum(res.ExplainedVarianceRatio), ShouldBeLessThanOrEqualTo, 1+1e-9)
			So(res.ExplainedVarianceRatio[0], ShouldBeGreaterThan, 0.5)
		})

		Convey("Loading columns are unit vectors", func() {
			var norm float64
			for _, row := range res.Loadings {
				norm += row[0] * row[0]
			}
			So(norm, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Scores are centered", func() {
			var s float64
			for _, row := range res.Scores {
				s += row[0]
			}
			So(s, ShouldAlmostEqual, 0.0, 1e-9)
		})

		Convey("Requirements are enforced", func() {
			_, err := PCA(ds, 1)
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
			_, err = PCA(ds, 4)
			So(errors.Is(err, model.ErrInsufficientSample), ShouldBeTrue)
			short := model.Dataset{Features: ds.Features, Rows: ds.Rows[:2]}
			_, err = PCA(short, 2)
			So(errors.Is(err, model.ErrInsufficientSample), ShouldBeTrue)
			one := model.Dataset{Features: []string{"a"}, Rows: ds.Rows}
			_, err = PCA(one, 2)
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})
	})
}

func TestRidge(t *testing.T) {
	Convey("Given an exactly linear relationship", t, func() {
		ds := linearDataset(30)
		x, y := ds.Matrix()

		Convey("Ridge recovers coefficients close to the truth", func() {
			r := NewRidge()
			So(r.Fit(x, y), ShouldBeNil)
			So(r.Coef[0], ShouldAlmostEqual, 3.0, 0.05)
			So(r.Coef[1], ShouldAlmostEqual, -2.0, 0.2)

			imp, ok := r.Importance().(LinearCoefficient)
			So(ok, ShouldBeTrue)
			So(imp.Signs, ShouldResemble, []int{1, -1})
			So(imp.Values[0], ShouldAlmostEqual, math.Abs(r.Coef[0]))
		})
	})
}

func TestTrees(t *testing.T) {
	Convey("Given a step function of the first feature only", t, func() {
		var x [][]float64
		var y []float64
		for i := 0; i < 40; i++ {
			x = append(x, []float64{float64(i), float64((i * 13) % 7)})
			if i < 20 {
				y = append(y, 0)
			} else {
				y = append(y, 10)
			}
		}

		Convey("The forest fits it and credits the first feature", func() {
			rf := NewRandomForest(WithEstimators(20))
			So(rf.Fit(x, y), ShouldBeNil)
			p := rf.Predict([][]float64{{2, 0}, {35, 0}})
			So(p[0], ShouldBeLessThan, 2)
			So(p[1], ShouldBeGreaterThan, 8)
			imp := rf.Importance().(TreeImportance)
			So(sum(imp.Values), ShouldAlmostEqual, 1.0)
			So(imp.Values[0], ShouldBeGreaterThan, imp.Values[1])
		})

		Convey("The forest is reproducible", func() {
			a, b := NewRandomForest(WithEstimators(10)), NewRandomForest(WithEstimators(10))
			So(a.Fit(x, y), ShouldBeNil)
			So(b.Fit(x, y), ShouldBeNil)
			So(a.Predict(x), ShouldResemble, b.Predict(x))
		})

		Convey("Boosting fits it and credits the first feature", func() {
			gb := NewGradientBoosting()
			So(gb.Fit(x, y), ShouldBeNil)
			p := gb.Predict([][]float64{{2, 0}, {35, 0}})
			So(p[0], ShouldAlmostEqual, 0.0, 0.5)
			So(p[1], ShouldAlmostEqual, 10.0, 0.5)
			imp := gb.Importance().(TreeImportance)
			So(sum(imp.Values), ShouldAlmostEqual, 1.0)
			So(imp.Values[0], ShouldBeGreaterThan, 0.9)
		})
	})
}

func TestTrain(t *testing.T) {
	Convey("Given a linear dataset", t, func() {
		ds := linearDataset(20)

		for _, mt := range ModelTypes {
			mt := mt
			Convey("Training "+string(mt)+" splits 14/6 and reports importance", func() {
				res, err := Train(ds, mt)
				So(err, ShouldBeNil)
				So(res.TrainSize, ShouldEqual, 14)
				So(res.TestSize, ShouldEqual, 6)
				So(res.Predictions, ShouldHaveLength, 6)
				So(res.Importance.Magnitudes(), ShouldHaveLength, 2)
				So(res.Metrics.MSE, ShouldBeGreaterThanOrEqualTo, 0)
			})
		}

		Convey("Ridge generalizes the linear relationship", func() {
			res, err := Train(ds, ModelRidge)
			So(err, ShouldBeNil)
			So(res.Metrics.R2, ShouldBeGreaterThan, 0.95)
		})

		Convey("Fewer than five rows is an insufficient sample", func() {
			small := model.Dataset{Features: ds.Features, Target: ds.Target, Rows: ds.Rows[:4]}
			_, err := Train(small, ModelRidge)
			So(errors.Is(err, model.ErrInsufficientSample), ShouldBeTrue)
		})

		Convey("Unknown model types are bad requests", func() {
			_, err := ParseModelType("svm")
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, ErrUnknownType), ShouldBeTrue)
			mt, err := ParseModelType("")
			So(err, ShouldBeNil)
			So(mt, ShouldEqual, ModelRandomForest)
		})
	})
}

func TestImportanceJSON(t *testing.T) {
	Convey("Importance variants are tagged in JSON", t, func() {
		b, err := json.Marshal(ModelResult{Importance: LinearCoefficient{Values: []float64{1}, Signs: []int{-1}}})
		So(err, ShouldBeNil)
		So(string(b), ShouldContainSubstring, `"importance":{"kind":"linear","values":[1],"signs":[-1]}`)

		b, err = json.Marshal(TreeImportance{Values: []float64{0.25, 0.75}})
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, `{"kind":"tree","values":[0.25,0.75]}`)
	})
}
