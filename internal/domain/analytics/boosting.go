package analytics

import "fmt"

// GradientBoosting is a second-order gradient-boosted tree ensemble for
// squared error, with L2 leaf regularization.
type GradientBoosting struct {
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	Lambda         float64
	MinChildWeight float64

	base       float64
	trees      []*tree
	importance []float64
}

// NewGradientBoosting returns 100 rounds of depth-6 trees with learning
// rate 0.3 and lambda 1.
func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{
		Rounds:         100,
		LearningRate:   0.3,
		MaxDepth:       6,
		Lambda:         1,
		MinChildWeight: 1,
	}
}

// Fit starts from the target mean and adds one tree per round.
func (gb *GradientBoosting) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("gradient boosting: %w: %d rows, %d targets", ErrShape, len(x), len(y))
	}
	n, d := len(x), len(x[0])

	gb.base = 0
	for _, v := range y {
		gb.base += v
	}
	gb.base /= float64(n)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = gb.base
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	gain := make([]float64, d)
	grad := make([]float64, n)
	gb.trees = gb.trees[:0]
	for r := 0; r < gb.Rounds; r++ {
		for i := range grad {
			grad[i] = pred[i] - y[i]
		}
		b := &boostBuilder{
			x:              x,
			grad:           grad,
			maxDepth:       gb.MaxDepth,
			lambda:         gb.Lambda,
			eta:            gb.LearningRate,
			minChildWeight: gb.MinChildWeight,
			importance:     gain,
		}
		t := b.build(idx)
		gb.trees = append(gb.trees, t)
		for i, row := range x {
			pred[i] += t.predict(row)
		}
	}
	gb.importance = normalize(gain)
	return nil
}

// Predict sums the base score and every tree.
func (gb *GradientBoosting) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		p := gb.base
		for _, t := range gb.trees {
			p += t.predict(row)
		}
		out[i] = p
	}
	return out
}

// Importance returns total split gain per feature, summing to 1.
func (gb *GradientBoosting) Importance() Importance {
	return TreeImportance{Values: gb.importance}
}
