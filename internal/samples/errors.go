package samples

import (
	"errors"
	"net/http"
)

// Domain errors for sample operations.
var (
	ErrNotFound     = errors.New("sample not found")
	ErrDuplicate    = errors.New("sample already exists")
	ErrInvalidFile  = errors.New("invalid sample upload")
	ErrFileTooLarge = errors.New("sample exceeds upload size limit")
	ErrEmptyCorpus  = errors.New("sample has no extractable text corpus")
)

// MapHTTPStatus maps sample domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrEmptyCorpus) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
