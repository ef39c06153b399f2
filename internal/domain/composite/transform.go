package composite

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/wbdash/internal/domain/model"
)

const (
	tScoreMean  = 50
	tScoreScale = 10
)

// Apply maps raw cohort values to display values. Standardized transforms
// use the population standard deviation and need at least two values with
// non-zero spread.
func Apply(t model.Transform, values []float64) ([]float64, error) {
	switch t {
	case "", model.TransformRaw:
		out := make([]float64, len(values))
		copy(out, values)
		return out, nil
	case model.TransformZScore, model.TransformTScore:
		z, err := ZScores(values)
		if err != nil {
			return nil, err
		}
		if t == model.TransformTScore {
			for i := range z {
				z[i] = tScoreMean + tScoreScale*z[i]
			}
		}
		return z, nil
	}
	return nil, fmt.Errorf("%w: unknown transform %q", model.ErrBadRequest, t)
}

// ZScores standardizes values with ddof=0.
func ZScores(values []float64) ([]float64, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: %d value(s), need 2", model.ErrInsufficientSample, len(values))
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if std == 0 || allEqual(values) {
		return nil, model.ErrZeroVariance
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out, nil
}

// allEqual catches identical cohorts whose rounded deviation is not exactly 0.
func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
