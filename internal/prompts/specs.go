package prompts

const styleSpec = `Respond with a JSON object matching this exact structure:

{
  "tone": ["<keyword1>", "<keyword2>"],
  "signature_phrases": ["<phrase1>", "<phrase2>"],
  "strengths": ["<strength1>"],
  "weaknesses": ["<weakness1>"],
  "tagline": "<tagline>",
  "bio": "<bio>"
}

Field constraints:
- tone: 3 to 6 lowercase keywords describing the dominant registers of
  the writing, ordered from most to least prominent.
- signature_phrases: Up to 5 phrases quoted or lightly normalized from
  the corpus. Empty array when the corpus is too short to show patterns.
- strengths: 2 to 4 concise positioning strengths grounded in the corpus.
- weaknesses: 1 to 3 concise positioning weaknesses grounded in the corpus.
- tagline: One sentence, no terminal period, under 12 words.
- bio: 2 to 4 sentences of professional bio in the author's voice.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Ground every field in the provided corpus; never invent facts
- Write the tagline and bio in first person only if the corpus does`

const visualSpec = `Respond with a JSON object matching this exact structure:

{
  "palette": ["#RRGGBB", "#RRGGBB"],
  "fonts": {
    "heading": "<typeface>",
    "body": "<typeface>"
  },
  "logo_prompt": "<description>"
}

Field constraints:
- palette: 3 to 5 hex color values, dominant color first. Uppercase hex
  digits, leading #.
- fonts.heading / fonts.body: Typeface names only, no weights or styles.
  The pair must contrast (e.g., a geometric sans over a humanist serif).
- logo_prompt: One concrete sentence describing a simple abstract mark:
  subject, composition, and the dominant palette color by hex value.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Derive the palette mood from the tone keywords, not the role tags
- Never reference trademarked marks or existing brand identities`

const documentSpec = `Respond with a JSON object matching this exact structure:

{
  "markdown": "<document>"
}

Field constraints:
- markdown: The complete brand document in the requested format. Use a
  single top-level heading, the tagline as a blockquote beneath it, and
  second-level sections for Bio, Voice, and Visual Identity.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Include every palette color and both typefaces in the Visual Identity section
- Do not add content that is absent from the style and visual analysis`

var specs = map[Stage]string{
	StageStyle:    styleSpec,
	StageVisual:   visualSpec,
	StageDocument: documentSpec,
}

// Spec returns the hardcoded specification for a generation stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
