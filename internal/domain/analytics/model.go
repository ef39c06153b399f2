package analytics

import (
	"fmt"
	"time"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/metrics"
)

// MinRegressionObservations is the smallest dataset a model is trained on.
const MinRegressionObservations = 5

// ModelType names a supported regressor.
type ModelType string

// Supported model types.
const (
	ModelRandomForest     ModelType = "random_forest"
	ModelGradientBoosting ModelType = "gradient_boosting"
	ModelRidge            ModelType = "ridge"
)

// ModelTypes lists the supported types in display order.
var ModelTypes = []ModelType{ModelRandomForest, ModelGradientBoosting, ModelRidge}

// ParseModelType maps user input to a ModelType. Empty selects random_forest.
func ParseModelType(s string) (ModelType, error) {
	switch ModelType(s) {
	case "":
		return ModelRandomForest, nil
	case ModelRandomForest, ModelGradientBoosting, ModelRidge:
		return ModelType(s), nil
	case "xgboost":
		return ModelGradientBoosting, nil
	}
	return "", fmt.Errorf("%w: %w %q", model.ErrBadRequest, ErrUnknownType, s)
}

// Regressor is a trainable single-output regression model.
type Regressor interface {
	Fit(x [][]float64, y []float64) error
	Predict(x [][]float64) []float64
	Importance() Importance
}

// NewRegressor builds the default-configured regressor for t.
func NewRegressor(t ModelType) (Regressor, error) {
	switch t {
	case ModelRandomForest:
		return NewRandomForest(), nil
	case ModelGradientBoosting:
		return NewGradientBoosting(), nil
	case ModelRidge:
		return NewRidge(), nil
	}
	return nil, fmt.Errorf("%w: %w %q", model.ErrBadRequest, ErrUnknownType, t)
}

// Prediction pairs a test row with its actual and predicted target.
type Prediction struct {
	CountryCode string  `json:"country_code"`
	Year        int     `json:"year"`
	Actual      float64 `json:"actual"`
	Predicted   float64 `json:"predicted"`
}

// ModelResult is a trained model evaluated on its held-out rows.
type ModelResult struct {
	Model       ModelType    `json:"model"`
	Features    []string     `json:"features"`
	Target      string       `json:"target"`
	TrainSize   int          `json:"train_size"`
	TestSize    int          `json:"test_size"`
	Metrics     Metrics      `json:"metrics"`
	Importance  Importance   `json:"importance"`
	Predictions []Prediction `json:"predictions"`
}

// Train splits ds 70/30 with DefaultSeed, standardizes features with the
// training rows' statistics, fits a t regressor and scores it on the test
// rows. ds must carry a target on every row.
func Train(ds model.Dataset, t ModelType) (ModelResult, error) {
	start := time.Now()
	res, err := train(ds, t)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RecordAnalysis("model_"+string(t), outcome, float64(time.Since(start).Milliseconds()))
	return res, err
}

func train(ds model.Dataset, t ModelType) (ModelResult, error) {
	if n := len(ds.Rows); n < MinRegressionObservations {
		return ModelResult{}, fmt.Errorf("train %s: %w: %d observation(s), need %d", t, model.ErrInsufficientSample, n, MinRegressionObservations)
	}
	if len(ds.Features) == 0 || ds.Target == "" {
		return ModelResult{}, fmt.Errorf("train %s: %w: features and target are required", t, model.ErrBadRequest)
	}
	reg, err := NewRegressor(t)
	if err != nil {
		return ModelResult{}, err
	}

	x, y := ds.Matrix()
	sp := TrainTestSplit(len(x), DefaultTestFraction, DefaultSeed)
	xTrain, yTrain := rowsAt(x, sp.Train), valuesAt(y, sp.Train)
	xTest, yTest := rowsAt(x, sp.Test), valuesAt(y, sp.Test)

	scaler, err := FitScaler(xTrain)
	if err != nil {
		return ModelResult{}, fmt.Errorf("train %s: %w", t, err)
	}
	if err := reg.Fit(scaler.Transform(xTrain), yTrain); err != nil {
		return ModelResult{}, fmt.Errorf("train %s: %w", t, err)
	}
	pred := reg.Predict(scaler.Transform(xTest))

	res := ModelResult{
		Model:       t,
		Features:    ds.Features,
		Target:      ds.Target,
		TrainSize:   len(sp.Train),
		TestSize:    len(sp.Test),
		Metrics:     Evaluate(yTest, pred),
		Importance:  reg.Importance(),
		Predictions: make([]Prediction, len(sp.Test)),
	}
	for i, k := range sp.Test {
		row := ds.Rows[k]
		res.Predictions[i] = Prediction{CountryCode: row.CountryCode, Year: row.Year, Actual: yTest[i], Predicted: pred[i]}
	}
	return res, nil
}
