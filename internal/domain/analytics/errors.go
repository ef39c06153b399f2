package analytics

import "errors"

// Analytics errors. Sample-size failures wrap model.ErrInsufficientSample.
var (
	ErrShape       = errors.New("matrix shape mismatch")
	ErrPCAFailed   = errors.New("principal components analysis failed")
	ErrSingular    = errors.New("singular system")
	ErrUnknownType = errors.New("unknown model type")
)
