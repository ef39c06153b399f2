package analytics

import (
	"math"
	"math/rand"
)

// Split defaults.
const (
	DefaultTestFraction = 0.3
	DefaultSeed         = 42
)

// Split holds row indices of a train/test partition.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles n row indices with seed and puts ceil(n*testFrac)
// of them in the test set. The same inputs always give the same split.
func TrainTestSplit(n int, testFrac float64, seed int64) Split {
	if n <= 0 {
		return Split{}
	}
	nTest := int(math.Ceil(float64(n) * testFrac))
	if nTest >= n {
		nTest = n - 1
	}
	if nTest < 0 {
		nTest = 0
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec // deterministic split
	return Split{Test: perm[:nTest], Train: perm[nTest:]}
}

// rowsAt selects rows by index.
func rowsAt(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, k := range idx {
		out[i] = x[k]
	}
	return out
}

// valuesAt selects values by index.
func valuesAt(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, k := range idx {
		out[i] = y[k]
	}
	return out
}
