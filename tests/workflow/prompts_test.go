package workflow_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"brandforge/internal/prompts"
	"brandforge/internal/workflow"
	"brandforge/pkg/pagination"
)

type mockPrompts struct {
	instructions map[prompts.Stage]string
	specs        map[prompts.Stage]string
}

func (m *mockPrompts) Handler() *prompts.Handler { return nil }
func (m *mockPrompts) List(context.Context, pagination.PageRequest, prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
	return nil, nil
}
func (m *mockPrompts) Find(context.Context, uuid.UUID) (*prompts.Prompt, error) { return nil, nil }
func (m *mockPrompts) Create(context.Context, prompts.CreateCommand) (*prompts.Prompt, error) {
	return nil, nil
}
func (m *mockPrompts) Update(context.Context, uuid.UUID, prompts.UpdateCommand) (*prompts.Prompt, error) {
	return nil, nil
}
func (m *mockPrompts) Delete(context.Context, uuid.UUID) error                        { return nil }
func (m *mockPrompts) Activate(context.Context, uuid.UUID) (*prompts.Prompt, error)   { return nil, nil }
func (m *mockPrompts) Deactivate(context.Context, uuid.UUID) (*prompts.Prompt, error) { return nil, nil }

func (m *mockPrompts) Instructions(_ context.Context, stage prompts.Stage) (string, error) {
	text, ok := m.instructions[stage]
	if !ok {
		return "", prompts.ErrInvalidStage
	}
	return text, nil
}

func (m *mockPrompts) Spec(_ context.Context, stage prompts.Stage) (string, error) {
	text, ok := m.specs[stage]
	if !ok {
		return "", prompts.ErrInvalidStage
	}
	return text, nil
}

func newMockPrompts() *mockPrompts {
	return &mockPrompts{
		instructions: map[prompts.Stage]string{
			prompts.StageStyle:    "style instructions",
			prompts.StageVisual:   "visual instructions",
			prompts.StageDocument: "document instructions",
		},
		specs: map[prompts.Stage]string{
			prompts.StageStyle:    "style spec",
			prompts.StageVisual:   "visual spec",
			prompts.StageDocument: "document spec",
		},
	}
}

func TestComposePrompt(t *testing.T) {
	ctx := context.Background()
	mock := newMockPrompts()

	t.Run("nil state produces instructions and spec", func(t *testing.T) {
		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageStyle, nil)
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		if !strings.Contains(got, "style instructions") {
			t.Error("missing instructions in prompt")
		}
		if !strings.Contains(got, "style spec") {
			t.Error("missing spec in prompt")
		}
		if strings.Contains(got, "Current brand state") {
			t.Error("nil state should not include state section")
		}
	})

	t.Run("with state includes serialized state", func(t *testing.T) {
		state := &workflow.BrandState{
			Style: &workflow.StylePayload{
				Tone:    "confident",
				Tagline: "Ship it well",
				Bio:     "A builder of reliable systems.",
			},
		}

		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageVisual, state)
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		if !strings.Contains(got, "visual instructions") {
			t.Error("missing instructions in prompt")
		}
		if !strings.Contains(got, "visual spec") {
			t.Error("missing spec in prompt")
		}
		if !strings.Contains(got, "Current brand state") {
			t.Error("missing state header in prompt")
		}
		if !strings.Contains(got, "confident") {
			t.Error("missing tone value in serialized state")
		}
	})

	t.Run("document stage uses document instructions and spec", func(t *testing.T) {
		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageDocument, nil)
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		if !strings.Contains(got, "document instructions") {
			t.Error("missing document instructions in prompt")
		}
		if !strings.Contains(got, "document spec") {
			t.Error("missing document spec in prompt")
		}
	})

	t.Run("invalid stage returns error", func(t *testing.T) {
		_, err := workflow.ComposePrompt(ctx, mock, "banana", nil)
		if err == nil {
			t.Error("expected error for invalid stage")
		}
	})

	t.Run("prompt structure is instructions then spec then state", func(t *testing.T) {
		state := &workflow.BrandState{
			Style: &workflow.StylePayload{
				Tone:    "warm",
				Tagline: "Design for people",
				Bio:     "A product designer.",
			},
		}

		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageVisual, state)
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		instrIdx := strings.Index(got, "visual instructions")
		specIdx := strings.Index(got, "visual spec")
		stateIdx := strings.Index(got, "Current brand state")

		if instrIdx >= specIdx {
			t.Error("instructions should appear before spec")
		}
		if specIdx >= stateIdx {
			t.Error("spec should appear before state")
		}
	})
}
