// Package brands implements the brand-kit domain for Brandforge. It
// provides types, data access, and business logic for generating,
// storing, and querying the brand kits produced by the generation
// workflow. Each sample holds at most one brand kit; regeneration
// replaces it.
package brands

import (
	"time"

	"github.com/google/uuid"
)

// Brand represents a stored brand kit for a sample. It mirrors the
// brands table schema with flattened workflow payloads; MarkdownKey and
// KitKey reference the rendered assets in blob storage.
type Brand struct {
	ID               uuid.UUID `json:"id"`
	SampleID         uuid.UUID `json:"sample_id"`
	Tone             string    `json:"tone"`
	SignaturePhrases []string  `json:"signature_phrases"`
	Strengths        []string  `json:"strengths"`
	Weaknesses       []string  `json:"weaknesses"`
	Tagline          string    `json:"tagline"`
	Bio              string    `json:"bio"`
	Palette          []string  `json:"palette"`
	HeadingFont      string    `json:"heading_font"`
	BodyFont         string    `json:"body_font"`
	LogoPrompt       string    `json:"logo_prompt"`
	MarkdownKey      string    `json:"markdown_key"`
	KitKey           string    `json:"kit_key"`
	GeneratedAt      time.Time `json:"generated_at"`
	ModelName        string    `json:"model_name"`
	ProviderName     string    `json:"provider_name"`
}
