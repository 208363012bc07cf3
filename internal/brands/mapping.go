package brands

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"brandforge/pkg/query"
	"brandforge/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "brands", "b").
	Project("id", "ID").
	Project("sample_id", "SampleID").
	Project("tone", "Tone").
	Project("signature_phrases", "SignaturePhrases").
	Project("strengths", "Strengths").
	Project("weaknesses", "Weaknesses").
	Project("tagline", "Tagline").
	Project("bio", "Bio").
	Project("palette", "Palette").
	Project("heading_font", "HeadingFont").
	Project("body_font", "BodyFont").
	Project("logo_prompt", "LogoPrompt").
	Project("markdown_key", "MarkdownKey").
	Project("kit_key", "KitKey").
	Project("generated_at", "GeneratedAt").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName")

var defaultSort = query.SortField{
	Field:      "GeneratedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for brand queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Tone      *string    `json:"tone,omitempty"`
	SampleID  *uuid.UUID `json:"sample_id,omitempty"`
	ModelName *string    `json:"model_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Tone", f.Tone).
		WhereEquals("SampleID", f.SampleID).
		WhereEquals("ModelName", f.ModelName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("tone"); t != "" {
		f.Tone = &t
	}

	if s := values.Get("sample_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SampleID = &id
		}
	}

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	return f
}

func scanBrand(s repository.Scanner) (Brand, error) {
	var b Brand
	var phrasesRaw, strengthsRaw, weaknessesRaw, paletteRaw []byte

	err := s.Scan(
		&b.ID,
		&b.SampleID,
		&b.Tone,
		&phrasesRaw,
		&strengthsRaw,
		&weaknessesRaw,
		&b.Tagline,
		&b.Bio,
		&paletteRaw,
		&b.HeadingFont,
		&b.BodyFont,
		&b.LogoPrompt,
		&b.MarkdownKey,
		&b.KitKey,
		&b.GeneratedAt,
		&b.ModelName,
		&b.ProviderName,
	)

	if err != nil {
		return b, err
	}

	for _, col := range []struct {
		name string
		raw  []byte
		dest *[]string
	}{
		{"signature_phrases", phrasesRaw, &b.SignaturePhrases},
		{"strengths", strengthsRaw, &b.Strengths},
		{"weaknesses", weaknessesRaw, &b.Weaknesses},
		{"palette", paletteRaw, &b.Palette},
	} {
		if len(col.raw) > 0 {
			if err := json.Unmarshal(col.raw, col.dest); err != nil {
				return b, fmt.Errorf("unmarshal %s: %w", col.name, err)
			}
		}
		if *col.dest == nil {
			*col.dest = []string{}
		}
	}

	return b, nil
}
