package workflow

import "errors"

// Workflow errors. Stage sentinels identify which pipeline step failed;
// ErrMalformedResponse marks an upstream model response that did not
// satisfy the stage's payload contract.
var (
	ErrSampleNotFound    = errors.New("sample not found")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrStyleFailed       = errors.New("style analysis failed")
	ErrVisualFailed      = errors.New("visual synthesis failed")
	ErrDocumentFailed    = errors.New("document assembly failed")
	ErrSaveFailed        = errors.New("brand kit save failed")
)
