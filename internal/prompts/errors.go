package prompts

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("prompt not found")
	ErrDuplicate    = errors.New("prompt name already exists")
	ErrInvalidStage = errors.New("stage must be style, visual, or document")
	ErrMissingField = errors.New("name and instructions are required")
)

// MapHTTPStatus translates prompt sentinels into response status codes.
// Unknown errors report as 500.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStage), errors.Is(err, ErrMissingField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
