package workflow

import (
	"context"
	"fmt"
	"strings"

	"brandforge/internal/prompts"
	"brandforge/internal/samples"
	"brandforge/pkg/formatting"
	"brandforge/pkg/pipeline"
)

// styleStep analyzes the sample corpus with the language model and
// records the resulting StylePayload in the brand state.
func styleStep(rt *Runtime, sample *samples.Sample, st *BrandState) pipeline.StepDefinition {
	return pipeline.StepDefinition{
		ID:             "style",
		Label:          "Style analysis",
		LoadingMessage: "Analyzing writing style...",
		SuccessMessage: "Style analysis complete",
		Run: func(ctx context.Context) error {
			return analyzeStyle(ctx, rt, sample, st)
		},
	}
}

func analyzeStyle(ctx context.Context, rt *Runtime, sample *samples.Sample, st *BrandState) error {
	system, err := ComposePrompt(ctx, rt.Prompts, prompts.StageStyle, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStyleFailed, err)
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\nWriting sample:\n\n")
	sb.WriteString(sample.Corpus)

	if len(sample.RoleTags) > 0 {
		sb.WriteString("\n\nTarget roles: ")
		sb.WriteString(strings.Join(sample.RoleTags, ", "))
	}

	a, err := rt.agentHandle()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStyleFailed, err)
	}

	resp, err := a.Chat(ctx, sb.String())
	if err != nil {
		rt.invalidateAgent()
		return fmt.Errorf("%w: chat call: %w", ErrStyleFailed, err)
	}

	parsed, err := formatting.Parse[StylePayload](resp.Content())
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrStyleFailed, ErrMalformedResponse, err)
	}

	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrStyleFailed, err)
	}

	st.Style = &parsed

	rt.Logger.InfoContext(
		ctx, "style stage complete",
		"sample_id", sample.ID,
		"tone", parsed.Tone,
	)
	return nil
}
