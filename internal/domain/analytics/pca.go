package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/wbdash/internal/domain/model"
)

// PCA requirements.
const (
	MinPCAComponents   = 2
	MinPCAObservations = 3
)

// CountryScores are the mean component scores of one country's rows.
type CountryScores struct {
	CountryCode string    `json:"country_code"`
	Scores      []float64 `json:"scores"`
	Rows        int       `json:"rows"`
}

// PCAResult is a fitted principal components analysis on standardized data.
type PCAResult struct {
	Features []string `json:"features"`
	// Scores has one row per observation and one column per component.
	Scores [][]float64 `json:"scores"`
	// Loadings has one row per feature and one column per component.
	Loadings               [][]float64     `json:"loadings"`
	ExplainedVarianceRatio []float64       `json:"explained_variance_ratio"`
	Countries              []CountryScores `json:"countries"`
}

// PCA standardizes the dataset and projects it on its first k principal
// components. It needs at least two features, three rows and
// k <= min(rows, features).
func PCA(ds model.Dataset, k int) (PCAResult, error) {
	n, d := len(ds.Rows), len(ds.Features)
	switch {
	case d < MinPCAComponents:
		return PCAResult{}, fmt.Errorf("pca: %w: %d indicator(s), need %d", model.ErrBadRequest, d, MinPCAComponents)
	case k < MinPCAComponents:
		return PCAResult{}, fmt.Errorf("pca: %w: %d component(s), need %d", model.ErrBadRequest, k, MinPCAComponents)
	case n < MinPCAObservations:
		return PCAResult{}, fmt.Errorf("pca: %w: %d observation(s), need %d", model.ErrInsufficientSample, n, MinPCAObservations)
	case k > min(n, d):
		return PCAResult{}, fmt.Errorf("pca: %w: %d components exceed min(%d, %d)", model.ErrInsufficientSample, k, n, d)
	}

	x, _ := ds.Matrix()
	scaler, err := FitScaler(x)
	if err != nil {
		return PCAResult{}, fmt.Errorf("pca: %w", err)
	}
	z := scaler.Transform(x)

	a := mat.NewDense(n, d, nil)
	for i, row := range z {
		a.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(a, nil); !ok {
		return PCAResult{}, fmt.Errorf("pca: %w", ErrPCAFailed)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	var total float64
	for _, v := range vars {
		total += v
	}
	res := PCAResult{
		Features:               ds.Features,
		ExplainedVarianceRatio: make([]float64, k),
		Loadings:               make([][]float64, d),
	}
	for j := 0; j < k; j++ {
		if total > 0 {
			res.ExplainedVarianceRatio[j] = vars[j] / total
		}
	}
	for i := 0; i < d; i++ {
		res.Loadings[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			res.Loadings[i][j] = vecs.At(i, j)
		}
	}

	// Project the centered data. Standardized columns already have mean 0.
	var proj mat.Dense
	proj.Mul(a, vecs.Slice(0, d, 0, k))
	res.Scores = make([][]float64, n)
	for i := 0; i < n; i++ {
		res.Scores[i] = mat.Row(nil, i, &proj)
	}

	res.Countries = countryMeans(ds.Countries(), res.Scores, k)
	return res, nil
}

func countryMeans(codes []string, scores [][]float64, k int) []CountryScores {
	var out []CountryScores
	pos := make(map[string]int)
	for i, code := range codes {
		p, ok := pos[code]
		if !ok {
			p = len(out)
			pos[code] = p
			out = append(out, CountryScores{CountryCode: code, Scores: make([]float64, k)})
		}
		for j := 0; j < k; j++ {
			out[p].Scores[j] += scores[i][j]
		}
		out[p].Rows++
	}
	for i := range out {
		for j := range out[i].Scores {
			out[i].Scores[j] /= float64(out[i].Rows)
		}
	}
	return out
}
