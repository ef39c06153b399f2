package model

import (
	"fmt"
)

// Direction says whether a higher raw value improves a composite.
type Direction int

// Directions.
const (
	HigherIsBetter Direction = 1
	LowerIsBetter  Direction = -1
)

// Family groups index definitions for fallback purposes.
type Family string

// Index families.
const (
	FamilyComposite Family = "composite"
	FamilySDG       Family = "sdg"
)

// MaxWeight is the upper bound for a component weight.
const MaxWeight = 100

// Component is one weighted indicator of a composite index.
type Component struct {
	IndicatorCode string    `json:"indicator_code"`
	Weight        float64   `json:"weight"`
	Direction     Direction `json:"direction"`
}

// IndexDefinition is an ordered list of components under a stable key.
// Weights need not sum to 100; they are re-normalized per country over
// the components that have data.
type IndexDefinition struct {
	Key        string      `json:"key"`
	Family     Family      `json:"family"`
	Goal       string      `json:"goal,omitempty"`
	Components []Component `json:"components"`
}

// Validate checks the component list.
func (d IndexDefinition) Validate() error {
	if len(d.Components) == 0 {
		return fmt.Errorf("%w: %s has no components", ErrInvalidDefinition, d.Key)
	}
	for _, c := range d.Components {
		if c.IndicatorCode == "" {
			return fmt.Errorf("%w: %s has a component without indicator", ErrInvalidDefinition, d.Key)
		}
		if c.Weight <= 0 || c.Weight > MaxWeight {
			return fmt.Errorf("%w: %s weight %v for %s outside (0,%d]", ErrInvalidDefinition, d.Key, c.Weight, c.IndicatorCode, MaxWeight)
		}
		if c.Direction != HigherIsBetter && c.Direction != LowerIsBetter {
			return fmt.Errorf("%w: %s direction %d for %s", ErrInvalidDefinition, d.Key, c.Direction, c.IndicatorCode)
		}
	}
	return nil
}

// IndicatorCodes lists the component codes in definition order.
func (d IndexDefinition) IndicatorCodes() []string {
	out := make([]string, len(d.Components))
	for i, c := range d.Components {
		out[i] = c.IndicatorCode
	}
	return out
}
