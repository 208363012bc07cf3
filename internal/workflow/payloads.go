package workflow

import (
	"fmt"
	"regexp"
)

// BrandState accumulates stage outputs across a run. Each stage reads
// the payloads of the stages before it and writes its own; steps execute
// strictly in order, so no locking is required.
type BrandState struct {
	Style    *StylePayload    `json:"style,omitempty"`
	Visual   *VisualPayload   `json:"visual,omitempty"`
	Document *DocumentPayload `json:"document,omitempty"`
}

// StylePayload is the validated output of the style analysis stage.
type StylePayload struct {
	Tone             string   `json:"tone"`
	SignaturePhrases []string `json:"signature_phrases"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Tagline          string   `json:"tagline"`
	Bio              string   `json:"bio"`
}

// Fonts pairs a heading typeface with a body typeface.
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// VisualPayload is the validated output of the visual synthesis stage.
type VisualPayload struct {
	Palette    []string `json:"palette"`
	Fonts      Fonts    `json:"fonts"`
	LogoPrompt string   `json:"logo_prompt"`
}

// DocumentPayload is the validated output of the document assembly stage.
type DocumentPayload struct {
	Markdown string `json:"markdown"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that the required style fields are present.
func (p *StylePayload) Validate() error {
	if p.Tone == "" {
		return fmt.Errorf("%w: missing tone", ErrMalformedResponse)
	}
	if p.Tagline == "" {
		return fmt.Errorf("%w: missing tagline", ErrMalformedResponse)
	}
	if p.Bio == "" {
		return fmt.Errorf("%w: missing bio", ErrMalformedResponse)
	}
	return nil
}

// Validate checks that the palette, fonts, and logo prompt are usable.
func (p *VisualPayload) Validate() error {
	if len(p.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrMalformedResponse)
	}
	for _, c := range p.Palette {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%w: palette color %q is not a hex value", ErrMalformedResponse, c)
		}
	}
	if p.Fonts.Heading == "" || p.Fonts.Body == "" {
		return fmt.Errorf("%w: incomplete font pair", ErrMalformedResponse)
	}
	if p.LogoPrompt == "" {
		return fmt.Errorf("%w: missing logo prompt", ErrMalformedResponse)
	}
	return nil
}

// Validate checks that the assembled document is non-empty.
func (p *DocumentPayload) Validate() error {
	if p.Markdown == "" {
		return fmt.Errorf("%w: empty document", ErrMalformedResponse)
	}
	return nil
}
