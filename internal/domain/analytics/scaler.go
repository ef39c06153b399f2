// Package analytics holds the numeric methods run over assembled feature
// tables: standardization, PCA, train/test splitting, regression models and
// their metrics.
package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers each column and divides by its population
// standard deviation. Columns with zero spread keep a scale of 1.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler learns column statistics from x.
func FitScaler(x [][]float64) (*StandardScaler, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("fit scaler: %w: no rows", ErrShape)
	}
	d := len(x[0])
	s := &StandardScaler{Mean: make([]float64, d), Scale: make([]float64, d)}
	col := make([]float64, len(x))
	for j := 0; j < d; j++ {
		for i, row := range x {
			if len(row) != d {
				return nil, fmt.Errorf("fit scaler: %w: row %d has %d columns, want %d", ErrShape, i, len(row), d)
			}
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}
	return s, nil
}

// Transform returns a standardized copy of x.
func (s *StandardScaler) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = r
	}
	return out
}
