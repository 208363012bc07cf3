package samples

import (
	"encoding/json"
	"fmt"
	"net/url"

	"brandforge/pkg/query"
	"brandforge/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "samples", "s").
	Project("id", "ID").
	Project("title", "Title").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("corpus", "Corpus").
	Project("role_tags", "RoleTags").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for sample queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanSample(s repository.Scanner) (Sample, error) {
	var sm Sample
	var tagsRaw []byte

	err := s.Scan(
		&sm.ID,
		&sm.Title,
		&sm.Filename,
		&sm.ContentType,
		&sm.SizeBytes,
		&sm.PageCount,
		&sm.StorageKey,
		&sm.Corpus,
		&tagsRaw,
		&sm.Status,
		&sm.UploadedAt,
		&sm.UpdatedAt,
	)

	if err != nil {
		return sm, err
	}

	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &sm.RoleTags); err != nil {
			return sm, fmt.Errorf("unmarshal role_tags: %w", err)
		}
	}

	if sm.RoleTags == nil {
		sm.RoleTags = []string{}
	}

	return sm, nil
}
