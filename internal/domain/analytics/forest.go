package analytics

import (
	"fmt"
	"math/rand"
	"sync"
)

// RandomForest is a bagged ensemble of squared-error regression trees that
// consider every feature at every split.
type RandomForest struct {
	NEstimators int
	MaxDepth    int
	MinSplit    int
	Bootstrap   bool
	Seed        int64

	trees      []*tree
	importance []float64
}

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

// WithEstimators sets the number of trees.
func WithEstimators(n int) ForestOption {
	return func(rf *RandomForest) {
		if n > 0 {
			rf.NEstimators = n
		}
	}
}

// WithForestSeed sets the bootstrap seed.
func WithForestSeed(seed int64) ForestOption {
	return func(rf *RandomForest) { rf.Seed = seed }
}

// NewRandomForest returns a 100-tree forest seeded with DefaultSeed.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators: 100,
		MinSplit:    2,
		Bootstrap:   true,
		Seed:        DefaultSeed,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit grows the trees concurrently. Tree t samples with its own source
// seeded Seed+t, so results do not depend on scheduling.
func (rf *RandomForest) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("random forest: %w: %d rows, %d targets", ErrShape, len(x), len(y))
	}
	n, d := len(x), len(x[0])

	rf.trees = make([]*tree, rf.NEstimators)
	perTree := make([][]float64, rf.NEstimators)
	var wg sync.WaitGroup
	for t := 0; t < rf.NEstimators; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(rf.Seed + int64(t))) //nolint:gosec // reproducible bootstrap
			idx := make([]int, n)
			for i := range idx {
				if rf.Bootstrap {
					idx[i] = rng.Intn(n)
				} else {
					idx[i] = i
				}
			}
			b := &cartBuilder{x: x, y: y, maxDepth: rf.MaxDepth, minSplit: rf.MinSplit, importance: make([]float64, d)}
			rf.trees[t] = b.build(idx)
			perTree[t] = normalize(b.importance)
		}(t)
	}
	wg.Wait()

	sum := make([]float64, d)
	for _, imp := range perTree {
		for j, v := range imp {
			sum[j] += v
		}
	}
	rf.importance = normalize(sum)
	return nil
}

// Predict averages the trees.
func (rf *RandomForest) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		var s float64
		for _, t := range rf.trees {
			s += t.predict(row)
		}
		out[i] = s / float64(len(rf.trees))
	}
	return out
}

// Importance returns the mean impurity decrease per feature, summing to 1.
func (rf *RandomForest) Importance() Importance {
	return TreeImportance{Values: rf.importance}
}
