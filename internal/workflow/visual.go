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

// visualStep derives a visual identity from the style analysis and
// records the resulting VisualPayload in the brand state.
func visualStep(rt *Runtime, sample *samples.Sample, st *BrandState) pipeline.StepDefinition {
	return pipeline.StepDefinition{
		ID:             "visual",
		Label:          "Visual synthesis",
		LoadingMessage: "Synthesizing visual identity...",
		SuccessMessage: "Visual identity complete",
		Run: func(ctx context.Context) error {
			return synthesizeVisual(ctx, rt, sample, st)
		},
	}
}

func synthesizeVisual(ctx context.Context, rt *Runtime, sample *samples.Sample, st *BrandState) error {
	if st.Style == nil {
		return fmt.Errorf("%w: no style analysis available", ErrVisualFailed)
	}

	system, err := ComposePrompt(ctx, rt.Prompts, prompts.StageVisual, st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVisualFailed, err)
	}

	var sb strings.Builder
	sb.WriteString(system)

	if len(sample.RoleTags) > 0 {
		sb.WriteString("\n\nTarget roles: ")
		sb.WriteString(strings.Join(sample.RoleTags, ", "))
	}

	a, err := rt.agentHandle()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVisualFailed, err)
	}

	resp, err := a.Chat(ctx, sb.String())
	if err != nil {
		rt.invalidateAgent()
		return fmt.Errorf("%w: chat call: %w", ErrVisualFailed, err)
	}

	parsed, err := formatting.Parse[VisualPayload](resp.Content())
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrVisualFailed, ErrMalformedResponse, err)
	}

	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrVisualFailed, err)
	}

	st.Visual = &parsed

	rt.Logger.InfoContext(
		ctx, "visual stage complete",
		"sample_id", sample.ID,
		"palette_size", len(parsed.Palette),
	)
	return nil
}
