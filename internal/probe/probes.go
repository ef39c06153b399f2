package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	xlsxMagic = []byte("PK")
)

// probe describes one endpoint check.
type probe struct {
	name  string
	path  string
	query func(cfg *Config) url.Values
	check func(r *response) (string, error)
}

// catalogue lists every probe in display order.
func catalogue() []probe {
	withCountries := baseQuery
	noCountries := func(cfg *Config) url.Values {
		q := baseQuery(cfg)
		q.Del("countries")
		return q
	}
	profileQuery := func(cfg *Config) url.Values {
		q := noCountries(cfg)
		if len(cfg.Countries) > 0 {
			q.Set("country", cfg.Countries[0])
		}
		return q
	}
	return []probe{
		{"catalog", "/api/catalog", noCountries, checkCatalog},
		{"compare", "/api/compare", withCountries, checkCompare},
		{"compare-chart", "/charts/compare.png", withCountries, checkMagic("image/png", pngMagic)},
		{"compare-export", "/export/compare.xlsx", withCountries, checkMagic("spreadsheetml", xlsxMagic)},
		{"profile", "/api/profile", profileQuery, checkProfile},
		{"composite", "/api/composite", withCountries, checkRanking},
		{"composite-chart", "/charts/composite.png", withCountries, checkMagic("image/png", pngMagic)},
		{"sdg", "/api/sdg", withCountries, checkRanking},
		{"pca", "/api/pca", withCountries, checkPCA},
		{"model", "/api/model", withCountries, checkModel},
		{"importance-chart", "/charts/importance.png", withCountries, checkMagic("image/png", pngMagic)},
	}
}

// selectProbes filters the catalogue by name. Unknown names are ignored.
func selectProbes(only []string) []probe {
	all := catalogue()
	if len(only) == 0 {
		return all
	}
	return lo.Filter(all, func(p probe, _ int) bool { return lo.Contains(only, p.name) })
}

// Names returns the name of every available probe.
func Names() []string {
	return lo.Map(catalogue(), func(p probe, _ int) string { return p.name })
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// expectOK turns a non-200 reply into an error carrying the service's error code.
func expectOK(r *response) error {
	if r.status == http.StatusOK {
		return nil
	}
	var e apiError
	if json.Unmarshal(r.body, &e) == nil && e.Code != "" {
		return fmt.Errorf("%w: status %d %s: %s", ErrUnexpected, r.status, e.Code, e.Message)
	}
	return fmt.Errorf("%w: status %d", ErrUnexpected, r.status)
}

func decode(r *response, v any) error {
	if err := expectOK(r); err != nil {
		return err
	}
	if !strings.HasPrefix(r.contentType, "application/json") {
		return fmt.Errorf("%w: content type %q", ErrUnexpected, r.contentType)
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
	return nil
}

func checkMagic(contentType string, magic []byte) func(r *response) (string, error) {
	return func(r *response) (string, error) {
		if err := expectOK(r); err != nil {
			return "", err
		}
		if !strings.Contains(r.contentType, contentType) || !bytes.HasPrefix(r.body, magic) {
			return "", fmt.Errorf("%w: not %s", ErrUnexpected, contentType)
		}
		return fmt.Sprintf("%d bytes", len(r.body)), nil
	}
}

func checkCatalog(r *response) (string, error) {
	var body struct {
		Locale     string            `json:"locale"`
		Indicators []json.RawMessage `json:"indicators"`
		Composite  []json.RawMessage `json:"composite_indices"`
		SDG        []json.RawMessage `json:"sdg_indices"`
	}
	if err := decode(r, &body); err != nil {
		return "", err
	}
	if len(body.Indicators) == 0 || len(body.Composite) == 0 {
		return "", fmt.Errorf("%w: empty catalog", ErrUnexpected)
	}
	return fmt.Sprintf("%s: %d indicators, %d composite, %d sdg",
		body.Locale, len(body.Indicators), len(body.Composite), len(body.SDG)), nil
}

func checkCompare(r *response) (string, error) {
	var body struct {
		Indicator struct {
			Code string `json:"code"`
		} `json:"indicator"`
		Series  []json.RawMessage `json:"series"`
		Missing []string          `json:"missing"`
	}
	if err := decode(r, &body); err != nil {
		return "", err
	}
	if len(body.Series) == 0 {
		return "", fmt.Errorf("%w: no series", ErrUnexpected)
	}
	return fmt.Sprintf("%s: %d series, %d missing", body.Indicator.Code, len(body.Series), len(body.Missing)), nil
}

func checkProfile(r *response) (string, error) {
	var body struct {
		Country  string   `json:"country"`
		Name     string   `json:"name"`
		Warnings []string `json:"warnings"`
	}
	if err := decode(r, &body); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s, %d warnings", body.Country, body.Name, len(body.Warnings)), nil
}

func checkRanking(r *response) (string, error) {
	var body struct {
		Index   string `json:"index"`
		Entries []struct {
			Rank        int     `json:"rank"`
			CountryCode string  `json:"country_code"`
			Score       float64 `json:"score"`
		} `json:"entries"`
	}
	if err := decode(r, &body); err != nil {
		return "", err
	}
	if len(body.Entries) == 0 {
		return "", fmt.Errorf("%w: no entries", ErrUnexpected)
	}
	top := body.Entries[0]
	return fmt.Sprintf("%s: %d ranked, #1 %s %.2f", body.Index, len(body.Entries), top.CountryCode, top.Score), nil
}

func checkPCA(r *response) (string, error) {
	var body struct {
		Features []string  `json:"features"`
		Ratio    []float64 `json:"explained_variance_ratio"`
	}
	if err := decode(r, &body); err != nil {
		return "", err
	}
	if len(body.Ratio) == 0 {
		return "", fmt.Errorf("%w: no components", ErrUnexpected)
	}
	return fmt.Sprintf("%d features, PC1 %.1f%%", len(body.Features), body.Ratio[0]*100), nil
}

func checkModel(r *response) (string, error) {
	var body struct {
		Model     string `json:"model"`
		TrainSize int    `json:"train_size"`
		TestSize  int    `json:"test_size"`
		Metrics   struct {
			R2 float64 `json:"r2"`
		} `json:"metrics"`
	}
	if err := decode(r, &body); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: train %d test %d r2 %.3f", body.Model, body.TrainSize, body.TestSize, body.Metrics.R2), nil
}
