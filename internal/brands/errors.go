package brands

import (
	"errors"
	"net/http"

	"brandforge/internal/samples"
	"brandforge/internal/workflow"
)

// Domain errors for brand operations.
var (
	ErrNotFound  = errors.New("brand not found")
	ErrDuplicate = errors.New("brand already exists")
)

// MapHTTPStatus maps brand domain and workflow errors to appropriate
// HTTP status codes. Upstream model failures surface as bad gateway;
// a sample with no usable corpus is unprocessable.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, workflow.ErrSampleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, samples.ErrEmptyCorpus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrStyleFailed),
		errors.Is(err, workflow.ErrVisualFailed),
		errors.Is(err, workflow.ErrDocumentFailed),
		errors.Is(err, workflow.ErrSaveFailed),
		errors.Is(err, workflow.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
