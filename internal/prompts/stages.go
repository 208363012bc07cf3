package prompts

import "encoding/json"

// Stage identifies one step of the brand kit generation pipeline. The
// stages run in a fixed order: style analysis first, then visual
// identity, then document production.
type Stage string

const (
	StageStyle    Stage = "style"
	StageVisual   Stage = "visual"
	StageDocument Stage = "document"
)

// pipeline holds the stages in execution order. Membership checks and
// Stages() both derive from it so the ordering is defined once.
var pipeline = [...]Stage{StageStyle, StageVisual, StageDocument}

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return pipeline[:]
}

// ParseStage validates a string as a pipeline stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	for _, stage := range pipeline {
		if Stage(s) == stage {
			return stage, nil
		}
	}
	return "", ErrInvalidStage
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v, err := ParseStage(raw)
	if err != nil {
		return err
	}

	*s = v
	return nil
}
