package analytics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge is L2-penalized least squares with an unpenalized intercept.
type Ridge struct {
	Alpha float64

	Intercept float64
	Coef      []float64
}

// NewRidge returns a ridge model with alpha 1.
func NewRidge() *Ridge {
	return &Ridge{Alpha: 1}
}

// Fit solves (XcᵀXc + αI)w = Xcᵀyc on centered data, then recovers the
// intercept from the means.
func (r *Ridge) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("ridge: %w: %d rows, %d targets", ErrShape, len(x), len(y))
	}
	n, d := len(x), len(x[0])

	xMean := make([]float64, d)
	var yMean float64
	for i, row := range x {
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	xc := mat.NewDense(n, d, nil)
	yc := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			xc.Set(i, j, v-xMean[j])
		}
		yc.SetVec(i, y[i]-yMean)
	}

	var gram mat.Dense
	gram.Mul(xc.T(), xc)
	for j := 0; j < d; j++ {
		gram.Set(j, j, gram.At(j, j)+r.Alpha)
	}
	var rhs mat.VecDense
	rhs.MulVec(xc.T(), yc)

	var w mat.VecDense
	if err := w.SolveVec(&gram, &rhs); err != nil {
		// An ill-conditioned system still yields a solution.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("ridge: %w: %v", ErrSingular, err)
		}
	}

	r.Coef = make([]float64, d)
	r.Intercept = yMean
	for j := 0; j < d; j++ {
		r.Coef[j] = w.AtVec(j)
		r.Intercept -= r.Coef[j] * xMean[j]
	}
	return nil
}

// Predict applies the fitted coefficients.
func (r *Ridge) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		p := r.Intercept
		for j, v := range row {
			p += r.Coef[j] * v
		}
		out[i] = p
	}
	return out
}

// Importance returns coefficient magnitudes with their signs.
func (r *Ridge) Importance() Importance {
	return newLinearCoefficient(r.Coef)
}
