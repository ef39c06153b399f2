package model

// FeatureRow is one (country, year) observation with a value for every
// requested indicator.
type FeatureRow struct {
	CountryCode string             `json:"country_code"`
	Year        int                `json:"year"`
	Values      map[string]float64 `json:"values"`
	Target      *float64           `json:"target,omitempty"`
}

// Dataset is an ordered feature table.
type Dataset struct {
	Features []string     `json:"features"`
	Target   string       `json:"target,omitempty"`
	Rows     []FeatureRow `json:"rows"`
}

// Matrix returns the feature values in column order and the targets, if any.
func (d Dataset) Matrix() ([][]float64, []float64) {
	x := make([][]float64, len(d.Rows))
	var y []float64
	if d.Target != "" {
		y = make([]float64, len(d.Rows))
	}
	for i, r := range d.Rows {
		row := make([]float64, len(d.Features))
		for j, f := range d.Features {
			row[j] = r.Values[f]
		}
		x[i] = row
		if y != nil && r.Target != nil {
			y[i] = *r.Target
		}
	}
	return x, y
}

// Countries returns the country code of every row.
func (d Dataset) Countries() []string {
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.CountryCode
	}
	return out
}
