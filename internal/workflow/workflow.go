package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandforge/internal/samples"
	"brandforge/pkg/pipeline"
	"brandforge/pkg/progress"
)

// Result carries the outputs of a completed generation run.
type Result struct {
	SampleID    uuid.UUID       `json:"sample_id"`
	RunID       string          `json:"run_id"`
	Style       StylePayload    `json:"style"`
	Visual      VisualPayload   `json:"visual"`
	Document    DocumentPayload `json:"document"`
	MarkdownKey string          `json:"markdown_key"`
	KitKey      string          `json:"kit_key"`
	Steps       []pipeline.Step `json:"steps"`
	CompletedAt time.Time       `json:"completed_at"`
}

// Execute runs the brand-generation pipeline for a single sample: style
// analysis, visual synthesis, document assembly, then asset persistence.
// Stages run strictly in order and the first failure stops the run; the
// run is recorded in the registry (when configured) so progress surfaces
// can observe per-step state while the pipeline executes.
func Execute(ctx context.Context, rt *Runtime, sampleID uuid.UUID) (*Result, error) {
	sample, err := rt.Samples.Find(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSampleNotFound, err)
	}

	if strings.TrimSpace(sample.Corpus) == "" {
		return nil, samples.ErrEmptyCorpus
	}

	tracker := progress.New(progress.Config{
		ResetDelay: rt.ResetDelay,
		Announcer:  progress.NewLogAnnouncer(rt.Logger),
	})
	runner := pipeline.NewRunner(tracker)

	st := &BrandState{}
	res := &Result{SampleID: sample.ID}

	defs := []pipeline.StepDefinition{
		styleStep(rt, sample, st),
		visualStep(rt, sample, st),
		documentStep(rt, sample, st),
		saveStep(rt, sample, st, res),
	}

	// Steps execute sequentially, so the typed stage error can be
	// captured for the caller while the runner records its message.
	var runErr error
	for i := range defs {
		run := defs[i].Run
		defs[i].Run = func(ctx context.Context) error {
			err := run(ctx)
			if err != nil {
				runErr = err
			}
			return err
		}
	}

	var runID string
	if rt.Runs != nil {
		runID = rt.Runs.Register(sample.ID, tracker, runner)
	}

	ok := runner.Execute(ctx, defs)

	if rt.Runs != nil {
		rt.Runs.Complete(runID, ok)
	}

	if !ok {
		if runErr == nil {
			runErr = ctx.Err()
		}
		if runErr == nil {
			runErr = errors.New("generation failed")
		}
		return nil, runErr
	}

	res.RunID = runID
	res.Style = *st.Style
	res.Visual = *st.Visual
	res.Document = *st.Document
	res.Steps = runner.Steps()
	res.CompletedAt = time.Now().UTC()

	rt.Logger.InfoContext(
		ctx, "generation workflow complete",
		"sample_id", sample.ID,
		"run_id", runID,
	)
	return res, nil
}
