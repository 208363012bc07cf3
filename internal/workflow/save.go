package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"brandforge/internal/samples"
	"brandforge/pkg/pipeline"
)

// BrandKit is the JSON asset persisted alongside the brand document.
type BrandKit struct {
	SampleID    string        `json:"sample_id"`
	Title       string        `json:"title"`
	Style       StylePayload  `json:"style"`
	Visual      VisualPayload `json:"visual"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// saveStep uploads the assembled document and the brand-kit JSON to
// blob storage. Persistence is the final step: nothing is written until
// every remote stage has succeeded.
func saveStep(rt *Runtime, sample *samples.Sample, st *BrandState, res *Result) pipeline.StepDefinition {
	return pipeline.StepDefinition{
		ID:             "save",
		Label:          "Save brand kit",
		LoadingMessage: "Saving brand kit...",
		SuccessMessage: "Brand kit saved",
		Run: func(ctx context.Context) error {
			return persistAssets(ctx, rt, sample, st, res)
		},
	}
}

func persistAssets(ctx context.Context, rt *Runtime, sample *samples.Sample, st *BrandState, res *Result) error {
	if st.Style == nil || st.Visual == nil || st.Document == nil {
		return fmt.Errorf("%w: incomplete brand state", ErrSaveFailed)
	}

	kit := BrandKit{
		SampleID:    sample.ID.String(),
		Title:       sample.Title,
		Style:       *st.Style,
		Visual:      *st.Visual,
		GeneratedAt: time.Now().UTC(),
	}

	kitJSON, err := json.MarshalIndent(kit, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal brand kit: %w", ErrSaveFailed, err)
	}

	markdownKey := fmt.Sprintf("brands/%s/brand.md", sample.ID)
	kitKey := fmt.Sprintf("brands/%s/kit.json", sample.ID)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reader := bytes.NewReader([]byte(st.Document.Markdown))
		if err := rt.Storage.Upload(gctx, markdownKey, reader, "text/markdown"); err != nil {
			return fmt.Errorf("upload document: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := rt.Storage.Upload(gctx, kitKey, bytes.NewReader(kitJSON), "application/json"); err != nil {
			return fmt.Errorf("upload kit: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	res.MarkdownKey = markdownKey
	res.KitKey = kitKey

	rt.Logger.InfoContext(
		ctx, "save stage complete",
		"sample_id", sample.ID,
		"markdown_key", markdownKey,
		"kit_key", kitKey,
	)
	return nil
}
