package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"brandforge/internal/prompts"
)

// ComposePrompt assembles the system prompt for a generation stage:
// tunable instructions first, then the immutable response specification,
// then the accumulated brand state. A nil state (first stage) yields
// instructions and spec only.
func ComposePrompt(
	ctx context.Context,
	sys prompts.System,
	stage prompts.Stage,
	state *BrandState,
) (string, error) {
	instructions, err := sys.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := sys.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	sections := []string{instructions, spec}

	if state != nil {
		encoded, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return "", fmt.Errorf("serialize brand state: %w", err)
		}
		sections = append(sections, "Current brand state:\n\n"+string(encoded))
	}

	return strings.Join(sections, "\n\n"), nil
}
