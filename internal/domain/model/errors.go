package model

import "errors"

// Error kinds shared across the domain.
var (
	// ErrNoData marks an upstream-absent result.
	ErrNoData = errors.New("no data")
	// ErrInsufficientSample marks a run below a method's minimum sample size.
	ErrInsufficientSample = errors.New("insufficient sample")
	// ErrZeroVariance marks a cohort whose standard deviation is zero.
	ErrZeroVariance = errors.New("zero variance")
	// ErrInvalidDefinition marks a malformed index definition.
	ErrInvalidDefinition = errors.New("invalid index definition")
	// ErrInvalidSpan marks a year range outside the allowed window.
	ErrInvalidSpan = errors.New("invalid year range")
	// ErrBadRequest marks invalid user parameters.
	ErrBadRequest = errors.New("bad request")
)
