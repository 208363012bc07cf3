// Package samples implements the writing-sample domain for Brandforge.
// It provides types, data access, and business logic for uploading and
// managing the writing samples (CVs, bios, article excerpts) that seed
// brand generation.
package samples

import (
	"time"

	"github.com/google/uuid"
)

// Sample statuses. A sample moves uploaded → generating → branded;
// a failed generation returns it to uploaded.
const (
	StatusUploaded   = "uploaded"
	StatusGenerating = "generating"
	StatusBranded    = "branded"
)

// Sample represents an uploaded writing sample with its metadata and
// blob storage reference. Corpus holds the extracted text used for
// style analysis.
type Sample struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Corpus      string    `json:"corpus"`
	RoleTags    []string  `json:"role_tags"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new sample.
type CreateCommand struct {
	Data        []byte
	Title       string
	Filename    string
	ContentType string
	Corpus      string
	RoleTags    []string
	PageCount   *int
}
