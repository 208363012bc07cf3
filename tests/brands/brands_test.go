package brands_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"brandforge/internal/brands"
	"brandforge/internal/samples"
	"brandforge/internal/workflow"
	"brandforge/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", brands.ErrNotFound, http.StatusNotFound},
		{"sample not found", workflow.ErrSampleNotFound, http.StatusNotFound},
		{"duplicate", brands.ErrDuplicate, http.StatusConflict},
		{"empty corpus", samples.ErrEmptyCorpus, http.StatusUnprocessableEntity},
		{"style failed", workflow.ErrStyleFailed, http.StatusBadGateway},
		{"visual failed", workflow.ErrVisualFailed, http.StatusBadGateway},
		{"document failed", workflow.ErrDocumentFailed, http.StatusBadGateway},
		{"save failed", workflow.ErrSaveFailed, http.StatusBadGateway},
		{"malformed response", workflow.ErrMalformedResponse, http.StatusBadGateway},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", brands.ErrNotFound), http.StatusNotFound},
		{"wrapped style failure", fmt.Errorf("generate: %w", workflow.ErrStyleFailed), http.StatusBadGateway},
		{"wrapped empty corpus", fmt.Errorf("generate: %w", samples.ErrEmptyCorpus), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := brands.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	sampleID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"tone":       {"confident"},
			"sample_id":  {sampleID.String()},
			"model_name": {"llama3.1:8b"},
		}

		f := brands.FiltersFromQuery(values)

		if f.Tone == nil || *f.Tone != "confident" {
			t.Errorf("Tone = %v, want confident", f.Tone)
		}
		if f.SampleID == nil || *f.SampleID != sampleID {
			t.Errorf("SampleID = %v, want %v", f.SampleID, sampleID)
		}
		if f.ModelName == nil || *f.ModelName != "llama3.1:8b" {
			t.Errorf("ModelName = %v, want llama3.1:8b", f.ModelName)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := brands.FiltersFromQuery(url.Values{})

		if f.Tone != nil {
			t.Errorf("Tone = %v, want nil", f.Tone)
		}
		if f.SampleID != nil {
			t.Errorf("SampleID = %v, want nil", f.SampleID)
		}
		if f.ModelName != nil {
			t.Errorf("ModelName = %v, want nil", f.ModelName)
		}
	})

	t.Run("invalid sample_id ignored", func(t *testing.T) {
		values := url.Values{"sample_id": {"not-a-uuid"}}
		f := brands.FiltersFromQuery(values)

		if f.SampleID != nil {
			t.Errorf("SampleID = %v, want nil for invalid input", f.SampleID)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "brands", "b").
		Project("tone", "Tone").
		Project("sample_id", "SampleID").
		Project("model_name", "ModelName")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := brands.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT b.tone, b.sample_id, b.model_name FROM public.brands b"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("tone equals filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := brands.Filters{Tone: ptr("confident")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if v, ok := args[0].(*string); !ok || *v != "confident" {
			t.Errorf("args[0] = %v, want *confident", args[0])
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		sampleID := uuid.New()
		b := query.NewBuilder(projection)
		f := brands.Filters{
			Tone:      ptr("confident"),
			SampleID:  &sampleID,
			ModelName: ptr("llama3.1:8b"),
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 3 {
			t.Errorf("args length = %d, want 3", len(args))
		}
	})
}
