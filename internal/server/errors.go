package server

import (
	"errors"
	"net/http"

	"github.com/highmark/consult-copilot/internal/pipeline"
	"github.com/highmark/consult-copilot/internal/quote"
)

// httpStatus maps domain errors to HTTP status codes.
func httpStatus(err error) int {
	var fault *pipeline.Fault

	switch {
	case errors.Is(err, pipeline.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, quote.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, quote.ErrStandardLine):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fault):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
