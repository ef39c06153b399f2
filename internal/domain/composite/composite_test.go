package composite

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

// series maps country -> indicator -> values.
type series map[string]map[string][]float64

func (s series) Fetch(_ context.Context, q model.Query) []model.IndicatorRecord {
	var out []model.IndicatorRecord
	for _, c := range q.Countries {
		for i, v := range s[c][q.Indicator] {
			out = append(out, model.IndicatorRecord{Country: "Name-" + c, CountryCode: c, IndicatorCode: q.Indicator, Year: 2000 + i, Value: v})
		}
	}
	return out
}

type namer map[string]string

func (n namer) CountryName(_ model.Locale, code string) string { return n[code] }

var def = model.IndexDefinition{
	Key:    "ab",
	Family: model.FamilyComposite,
	Components: []model.Component{
		{IndicatorCode: "A", Weight: 50, Direction: model.HigherIsBetter},
		{IndicatorCode: "B", Weight: 50, Direction: model.LowerIsBetter},
	},
}

func newEngine(s series) *Engine {
	return New(s, WithLogger(logger.NewWithWriter(&bytes.Buffer{})), WithNamer(namer{"ZZ": "Zedland"}))
}

func cfg() model.RequestConfig {
	return model.RequestConfig{Locale: model.LocaleEN, Span: model.Span{Start: 2000, End: 2010}}
}

func TestEvaluate(t *testing.T) {
	Convey("Given components A (+1) and B (-1) with equal weights", t, func() {
		ctx := context.Background()
		span := cfg().Span

		Convey("When both are present with means 10 and 4", func() {
			e := newEngine(series{"X": {"A": {8, 12}, "B": {4}}})
			v, ok := e.Evaluate(ctx, def, "X", span)
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 3.0)
		})

		Convey("When B is absent the value is A's mean", func() {
			e := newEngine(series{"X": {"A": {10}}})
			v, ok := e.Evaluate(ctx, def, "X", span)
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 10.0)
		})

		Convey("When both are absent the country is absent", func() {
			e := newEngine(series{})
			_, ok := e.Evaluate(ctx, def, "X", span)
			So(ok, ShouldBeFalse)
		})

		Convey("Evaluation is idempotent", func() {
			e := newEngine(series{"X": {"A": {1, 2, 3}, "B": {7}}})
			v1, _ := e.Evaluate(ctx, def, "X", span)
			v2, _ := e.Evaluate(ctx, def, "X", span)
			So(v1, ShouldEqual, v2)
		})
	})
}

func TestCombine(t *testing.T) {
	Convey("Given three weighted components", t, func() {
		d := model.IndexDefinition{Key: "k", Components: []model.Component{
			{IndicatorCode: "A", Weight: 30, Direction: 1},
			{IndicatorCode: "B", Weight: 20, Direction: 1},
			{IndicatorCode: "C", Weight: 50, Direction: -1},
		}}

		Convey("Re-normalized weights of present components sum to 1", func() {
			for _, obs := range [][]Observation{
				{{1, true}, {2, true}, {3, true}},
				{{1, true}, {}, {3, true}},
				{{}, {2, true}, {}},
			} {
				res, ok := Combine(d, obs)
				So(ok, ShouldBeTrue)
				var sum float64
				for _, w := range res.Weights {
					sum += w
				}
				So(sum, ShouldAlmostEqual, 1.0)
				So(len(res.Used), ShouldEqual, len(res.Weights))
			}
		})

		Convey("Absent components are excluded from Used", func() {
			res, _ := Combine(d, []Observation{{1, true}, {}, {3, true}})
			So(res.Used, ShouldResemble, []string{"A", "C"})
			So(res.Value, ShouldAlmostEqual, 1*0.375-3*0.625)
		})

		Convey("Zero total weight falls back to the unweighted mean", func() {
			zero := model.IndexDefinition{Components: []model.Component{
				{IndicatorCode: "A", Weight: 0, Direction: 1},
				{IndicatorCode: "B", Weight: 0, Direction: -1},
			}}
			res, ok := Combine(zero, []Observation{{4, true}, {2, true}})
			So(ok, ShouldBeTrue)
			So(res.Value, ShouldAlmostEqual, 1.0)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given a cohort with one country lacking data", t, func() {
		ctx := context.Background()
		e := newEngine(series{
			"X":  {"A": {10}, "B": {4}},
			"Y":  {"A": {20}},
			"ZZ": {"A": {3}},
			"W":  {"A": {20}},
		})
		countries := []string{"X", "Y", "none", "ZZ", "W"}

		Convey("Raw ranking omits the absent country and sorts descending with stable ties", func() {
			r, err := e.Rank(ctx, def, countries, cfg(), model.TransformRaw)
			So(err, ShouldBeNil)
			So(r.Omitted, ShouldResemble, []string{"none"})
			codes := make([]string, len(r.Scores))
			for i, s := range r.Scores {
				codes[i] = s.CountryCode
			}
			So(codes, ShouldResemble, []string{"Y", "W", "X", "ZZ"})
			So(r.Scores[0].DisplayName, ShouldEqual, "Name-Y")
			So(r.Scores[0].Display, ShouldEqual, r.Scores[0].Raw)
		})

		Convey("Z-scored cohort has mean 0 and population variance 1", func() {
			r, err := e.Rank(ctx, def, countries, cfg(), model.TransformZScore)
			So(err, ShouldBeNil)
			var sum, sq float64
			for _, s := range r.Scores {
				sum += s.Display
			}
			mean := sum / float64(len(r.Scores))
			for _, s := range r.Scores {
				sq += (s.Display - mean) * (s.Display - mean)
			}
			So(mean, ShouldAlmostEqual, 0.0, 1e-9)
			So(sq/float64(len(r.Scores)), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("T-scores are 50 + 10z", func() {
			z, _ := e.Rank(ctx, def, countries, cfg(), model.TransformZScore)
			ts, err := e.Rank(ctx, def, countries, cfg(), model.TransformTScore)
			So(err, ShouldBeNil)
			for i := range ts.Scores {
				So(ts.Scores[i].Display, ShouldAlmostEqual, 50+10*z.Scores[i].Display, 1e-9)
			}
		})

		Convey("No country with data is no_data", func() {
			_, err := e.Rank(ctx, def, []string{"none"}, cfg(), model.TransformRaw)
			So(errors.Is(err, model.ErrNoData), ShouldBeTrue)
		})

		Convey("A single country cannot be standardized", func() {
			_, err := e.Rank(ctx, def, []string{"X"}, cfg(), model.TransformZScore)
			So(errors.Is(err, model.ErrInsufficientSample), ShouldBeTrue)
		})

		Convey("Identical values have zero variance", func() {
			_, err := e.Rank(ctx, def, []string{"Y", "W"}, cfg(), model.TransformTScore)
			So(errors.Is(err, model.ErrZeroVariance), ShouldBeTrue)
		})
	})

	Convey("Given a fetcher that never supplies a name", t, func() {
		e := New(model.FetcherFunc(func(_ context.Context, q model.Query) []model.IndicatorRecord {
			return []model.IndicatorRecord{{CountryCode: q.Countries[0], Year: 2000, Value: 1}}
		}), WithLogger(logger.NewWithWriter(&bytes.Buffer{})), WithNamer(namer{"ZZ": "Zedland"}))

		Convey("The catalog name, then the code, is displayed", func() {
			r, err := e.Rank(context.Background(), def, []string{"ZZ", "QQ"}, cfg(), model.TransformRaw)
			So(err, ShouldBeNil)
			So(r.Scores[0].DisplayName, ShouldEqual, "Zedland")
			So(r.Scores[1].DisplayName, ShouldEqual, "QQ")
		})
	})
}

func TestZScores(t *testing.T) {
	Convey("Population standard deviation is used", t, func() {
		z, err := ZScores([]float64{1, 3})
		So(err, ShouldBeNil)
		So(z[0], ShouldAlmostEqual, -1.0)
		So(z[1], ShouldAlmostEqual, 1.0)
		So(math.IsNaN(z[0]), ShouldBeFalse)
	})

	Convey("Large magnitudes with a real spread are standardized", t, func() {
		z, err := ZScores([]float64{1e13, 1e13 + 2, 1e13 + 4})
		So(err, ShouldBeNil)
		So(z[0], ShouldAlmostEqual, -math.Sqrt(1.5), 1e-9)
		So(z[1], ShouldAlmostEqual, 0, 1e-9)
		So(z[2], ShouldAlmostEqual, math.Sqrt(1.5), 1e-9)
	})

	Convey("Identical large values have zero variance", t, func() {
		_, err := ZScores([]float64{1e13 + 0.1, 1e13 + 0.1, 1e13 + 0.1})
		So(errors.Is(err, model.ErrZeroVariance), ShouldBeTrue)
	})
}

func TestRankConcurrency(t *testing.T) {
	Convey("Given a cohort larger than the worker pool", t, func() {
		s := series{}
		var codes []string
		for i := 0; i < 12; i++ {
			code := string(rune('A'+i)) + "X"
			codes = append(codes, code)
			s[code] = map[string][]float64{"A": {float64(i % 5)}, "B": {1}}
		}
		codes = append(codes, "NONE")
		log := WithLogger(logger.NewWithWriter(&bytes.Buffer{}))

		Convey("Serial and pooled evaluation agree, ties keep input order", func() {
			serial, err := New(s, log, WithWorkers(1)).Rank(context.Background(), def, codes, cfg(), model.TransformRaw)
			So(err, ShouldBeNil)
			pooled, err := New(s, log, WithWorkers(8)).Rank(context.Background(), def, codes, cfg(), model.TransformRaw)
			So(err, ShouldBeNil)
			So(pooled.Scores, ShouldResemble, serial.Scores)
			So(pooled.Omitted, ShouldResemble, []string{"NONE"})
			So(pooled.Scores[0].CountryCode, ShouldEqual, "EX")
			So(pooled.Scores[1].CountryCode, ShouldEqual, "JX")
		})

		Convey("A canceled context aborts the ranking", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := New(s, log).Rank(ctx, def, codes, cfg(), model.TransformRaw)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
