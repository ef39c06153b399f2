package analytics

import "math"

// Metrics are test-set regression scores.
type Metrics struct {
	MSE float64 `json:"mse"`
	MAE float64 `json:"mae"`
	R2  float64 `json:"r2"`
}

// Evaluate scores predictions against actual values. R² is 0 when the
// actual values have no spread.
func Evaluate(actual, predicted []float64) Metrics {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		return Metrics{}
	}
	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(n)

	var sse, sae, sst float64
	for i, a := range actual {
		e := a - predicted[i]
		sse += e * e
		sae += math.Abs(e)
		sst += (a - mean) * (a - mean)
	}
	m := Metrics{MSE: sse / float64(n), MAE: sae / float64(n)}
	if sst > 0 {
		m.R2 = 1 - sse/sst
	}
	return m
}
