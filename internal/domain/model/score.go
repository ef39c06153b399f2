package model

import "fmt"

// CountryScore is the composite outcome for one country. Countries without
// any component data never get a CountryScore.
type CountryScore struct {
	CountryCode string  `json:"country_code"`
	DisplayName string  `json:"display_name"`
	Raw         float64 `json:"raw"`
	Display     float64 `json:"display"`
	// Used lists the indicator codes that contributed.
	Used []string `json:"used"`
	// Weights are the re-normalized weights aligned with Used.
	Weights []float64 `json:"weights"`
}

// Transform is a cohort-wide display transform of composite values.
type Transform string

// Supported transforms.
const (
	TransformRaw    Transform = "raw"
	TransformZScore Transform = "zscore"
	TransformTScore Transform = "tscore"
)

// ParseTransform maps user input to a Transform. Empty selects raw.
func ParseTransform(s string) (Transform, error) {
	switch Transform(s) {
	case "", TransformRaw:
		return TransformRaw, nil
	case TransformZScore, "z":
		return TransformZScore, nil
	case TransformTScore, "t":
		return TransformTScore, nil
	}
	return "", fmt.Errorf("%w: unknown transform %q", ErrBadRequest, s)
}
