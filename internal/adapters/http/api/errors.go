package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/wbdash/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrRender     = errors.New("render failed")
)

// classify maps an operation error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, model.ErrInsufficientSample), errors.Is(err, model.ErrZeroVariance):
		return http.StatusUnprocessableEntity, "insufficient_sample"
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrBadRequest), errors.Is(err, model.ErrInvalidSpan):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
