package analytics

import "sort"

// node is one node of a binary regression tree stored in a flat slice.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
	leaf      bool
}

// tree is a fitted regression tree.
type tree struct {
	nodes []node
}

func (t *tree) predict(row []float64) float64 {
	i := 0
	for {
		n := t.nodes[i]
		if n.leaf {
			return n.value
		}
		if row[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

// split is a candidate partition of a node.
type split struct {
	feature   int
	threshold float64
	score     float64
	left      []int
	right     []int
	ok        bool
}

// sortedBy returns idx ordered by column f.
func sortedBy(x [][]float64, idx []int, f int) []int {
	s := make([]int, len(idx))
	copy(s, idx)
	sort.SliceStable(s, func(a, b int) bool { return x[s[a]][f] < x[s[b]][f] })
	return s
}

// partition splits idx on column f at threshold.
func partition(x [][]float64, idx []int, f int, threshold float64) ([]int, []int) {
	var left, right []int
	for _, i := range idx {
		if x[i][f] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// cartBuilder grows a variance-reduction (squared error) tree.
type cartBuilder struct {
	x          [][]float64
	y          []float64
	maxDepth   int // 0 means unlimited
	minSplit   int
	importance []float64
}

func (b *cartBuilder) build(idx []int) *tree {
	t := &tree{}
	b.grow(t, idx, 0)
	return t
}

func meanSSE(y []float64, idx []int) (mean, sse float64) {
	for _, i := range idx {
		mean += y[i]
	}
	mean /= float64(len(idx))
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return mean, sse
}

func (b *cartBuilder) grow(t *tree, idx []int, depth int) int {
	pos := len(t.nodes)
	mean, sse := meanSSE(b.y, idx)
	t.nodes = append(t.nodes, node{leaf: true, value: mean})

	if len(idx) < b.minSplit || sse <= 0 || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return pos
	}
	best := b.bestSplit(idx, sse)
	if !best.ok {
		return pos
	}

	b.importance[best.feature] += best.score
	left := b.grow(t, best.left, depth+1)
	right := b.grow(t, best.right, depth+1)
	t.nodes[pos] = node{feature: best.feature, threshold: best.threshold, left: left, right: right, value: mean}
	return pos
}

// bestSplit maximizes the impurity decrease sse - (sseL + sseR).
func (b *cartBuilder) bestSplit(idx []int, parentSSE float64) split {
	best := split{}
	n := float64(len(idx))
	for f := range b.x[idx[0]] {
		s := sortedBy(b.x, idx, f)
		var total, totalSq float64
		for _, i := range s {
			total += b.y[i]
			totalSq += b.y[i] * b.y[i]
		}
		var sumL, sqL float64
		for k := 0; k < len(s)-1; k++ {
			v := b.y[s[k]]
			sumL += v
			sqL += v * v
			cur, next := b.x[s[k]][f], b.x[s[k+1]][f]
			if cur == next {
				continue
			}
			nl := float64(k + 1)
			nr := n - nl
			sumR := total - sumL
			sqR := totalSq - sqL
			sse := (sqL - sumL*sumL/nl) + (sqR - sumR*sumR/nr)
			gain := parentSSE - sse
			if gain > best.score+1e-12 {
				best = split{feature: f, threshold: (cur + next) / 2, score: gain, ok: true}
			}
		}
	}
	if best.ok {
		best.left, best.right = partition(b.x, idx, best.feature, best.threshold)
	}
	return best
}

// boostBuilder grows a second-order gradient tree for squared error, where
// every hessian is 1.
type boostBuilder struct {
	x              [][]float64
	grad           []float64
	maxDepth       int
	lambda         float64
	eta            float64
	minChildWeight float64
	importance     []float64
}

func (b *boostBuilder) build(idx []int) *tree {
	t := &tree{}
	b.grow(t, idx, 0)
	return t
}

func (b *boostBuilder) sums(idx []int) (g, h float64) {
	for _, i := range idx {
		g += b.grad[i]
	}
	return g, float64(len(idx))
}

func (b *boostBuilder) grow(t *tree, idx []int, depth int) int {
	pos := len(t.nodes)
	g, h := b.sums(idx)
	t.nodes = append(t.nodes, node{leaf: true, value: -b.eta * g / (h + b.lambda)})

	if depth >= b.maxDepth || h < 2*b.minChildWeight {
		return pos
	}
	best := b.bestSplit(idx, g, h)
	if !best.ok {
		return pos
	}

	b.importance[best.feature] += best.score
	left := b.grow(t, best.left, depth+1)
	right := b.grow(t, best.right, depth+1)
	t.nodes[pos] = node{feature: best.feature, threshold: best.threshold, left: left, right: right}
	return pos
}

func (b *boostBuilder) bestSplit(idx []int, g, h float64) split {
	best := split{}
	parent := g * g / (h + b.lambda)
	for f := range b.x[idx[0]] {
		s := sortedBy(b.x, idx, f)
		var gl float64
		for k := 0; k < len(s)-1; k++ {
			gl += b.grad[s[k]]
			cur, next := b.x[s[k]][f], b.x[s[k+1]][f]
			if cur == next {
				continue
			}
			hl := float64(k + 1)
			hr := h - hl
			if hl < b.minChildWeight || hr < b.minChildWeight {
				continue
			}
			gr := g - gl
			gain := 0.5 * (gl*gl/(hl+b.lambda) + gr*gr/(hr+b.lambda) - parent)
			if gain > best.score+1e-12 {
				best = split{feature: f, threshold: (cur + next) / 2, score: gain, ok: true}
			}
		}
	}
	if best.ok {
		best.left, best.right = partition(b.x, idx, best.feature, best.threshold)
	}
	return best
}
