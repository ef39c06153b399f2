package model

import "fmt"

// Locale selects label language.
type Locale string

// Supported locales.
const (
	LocaleJA Locale = "ja"
	LocaleEN Locale = "en"
)

// ParseLocale returns the locale for s, or fallback when s is empty or unknown.
func ParseLocale(s string, fallback Locale) Locale {
	switch Locale(s) {
	case LocaleJA, LocaleEN:
		return Locale(s)
	}
	return fallback
}

// Span is an inclusive year range.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Validate checks ordering and the allowed window [minYear, maxYear].
func (s Span) Validate(minYear, maxYear int) error {
	if s.Start > s.End {
		return fmt.Errorf("%w: start %d after end %d", ErrInvalidSpan, s.Start, s.End)
	}
	if s.Start < minYear || s.End > maxYear {
		return fmt.Errorf("%w: %d-%d outside %d-%d", ErrInvalidSpan, s.Start, s.End, minYear, maxYear)
	}
	return nil
}

// Years lists every year of the span in order.
func (s Span) Years() []int {
	if s.End < s.Start {
		return nil
	}
	out := make([]int, 0, s.End-s.Start+1)
	for y := s.Start; y <= s.End; y++ {
		out = append(out, y)
	}
	return out
}

// String renders the span the way the upstream date parameter expects.
func (s Span) String() string { return fmt.Sprintf("%d:%d", s.Start, s.End) }

// RequestConfig is the immutable per-request configuration passed into
// every computation.
type RequestConfig struct {
	Locale Locale
	Span   Span
}

// NewRequestConfig builds a validated RequestConfig.
func NewRequestConfig(locale Locale, span Span, minYear, maxYear int) (RequestConfig, error) {
	if err := span.Validate(minYear, maxYear); err != nil {
		return RequestConfig{}, err
	}
	return RequestConfig{Locale: locale, Span: span}, nil
}
