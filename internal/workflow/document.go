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

// documentStep assembles the brand document from the accumulated style
// and visual payloads.
func documentStep(rt *Runtime, sample *samples.Sample, st *BrandState) pipeline.StepDefinition {
	return pipeline.StepDefinition{
		ID:             "document",
		Label:          "Document assembly",
		LoadingMessage: "Assembling brand document...",
		SuccessMessage: "Brand document assembled",
		Run: func(ctx context.Context) error {
			return assembleDocument(ctx, rt, sample, st)
		},
	}
}

func assembleDocument(ctx context.Context, rt *Runtime, sample *samples.Sample, st *BrandState) error {
	if st.Style == nil || st.Visual == nil {
		return fmt.Errorf("%w: incomplete brand state", ErrDocumentFailed)
	}

	system, err := ComposePrompt(ctx, rt.Prompts, prompts.StageDocument, st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDocumentFailed, err)
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\nOutput format: ")
	sb.WriteString(rt.Format)
	sb.WriteString("\nSubject: ")
	sb.WriteString(sample.Title)

	a, err := rt.agentHandle()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDocumentFailed, err)
	}

	resp, err := a.Chat(ctx, sb.String())
	if err != nil {
		rt.invalidateAgent()
		return fmt.Errorf("%w: chat call: %w", ErrDocumentFailed, err)
	}

	parsed, err := formatting.Parse[DocumentPayload](resp.Content())
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrDocumentFailed, ErrMalformedResponse, err)
	}

	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrDocumentFailed, err)
	}

	st.Document = &parsed

	rt.Logger.InfoContext(
		ctx, "document stage complete",
		"sample_id", sample.ID,
		"document_bytes", len(parsed.Markdown),
	)
	return nil
}
