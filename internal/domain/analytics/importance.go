package analytics

import (
	"encoding/json"
	"math"
)

// Importance is the per-feature importance reported by a fitted model.
// It is either TreeImportance or LinearCoefficient.
type Importance interface {
	// Magnitudes returns non-negative per-feature values for charting.
	Magnitudes() []float64
	// Kind names the variant.
	Kind() string
	sealed()
}

// TreeImportance holds impurity- or gain-based importances summing to 1.
type TreeImportance struct {
	Values []float64
}

// Magnitudes implements Importance.
func (t TreeImportance) Magnitudes() []float64 { return t.Values }

// Kind implements Importance.
func (TreeImportance) Kind() string { return "tree" }

func (TreeImportance) sealed() {}

// MarshalJSON tags the variant.
func (t TreeImportance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string    `json:"kind"`
		Values []float64 `json:"values"`
	}{t.Kind(), t.Values})
}

// LinearCoefficient holds absolute coefficient sizes and their signs.
type LinearCoefficient struct {
	Values []float64
	Signs  []int
}

// Magnitudes implements Importance.
func (l LinearCoefficient) Magnitudes() []float64 { return l.Values }

// Kind implements Importance.
func (LinearCoefficient) Kind() string { return "linear" }

func (LinearCoefficient) sealed() {}

// MarshalJSON tags the variant.
func (l LinearCoefficient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string    `json:"kind"`
		Values []float64 `json:"values"`
		Signs  []int     `json:"signs"`
	}{l.Kind(), l.Values, l.Signs})
}

// newLinearCoefficient splits coefficients into magnitudes and signs.
func newLinearCoefficient(coef []float64) LinearCoefficient {
	l := LinearCoefficient{Values: make([]float64, len(coef)), Signs: make([]int, len(coef))}
	for i, c := range coef {
		l.Values[i] = math.Abs(c)
		switch {
		case c > 0:
			l.Signs[i] = 1
		case c < 0:
			l.Signs[i] = -1
		}
	}
	return l
}

// normalize scales v to sum to 1, leaving an all-zero vector unchanged.
func normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum <= 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / sum
	}
	return out
}
