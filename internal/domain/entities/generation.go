package entities

import "strings"

// GenerationMode selects how the user's input text is interpreted when
// building the slide prompt.
type GenerationMode string

const (
	// ModeTopic expands a short topic line into a full deck.
	ModeTopic GenerationMode = "topic"
	// ModeBullets structures a bullet list into slides.
	ModeBullets GenerationMode = "bullets"
	// ModeContent reworks full prose into slides.
	ModeContent GenerationMode = "content"
	// ModeSummary summarizes source material, crawling it first when the
	// input is a URL.
	ModeSummary GenerationMode = "summary"
)

// Valid reports whether the mode is one of the supported values.
func (m GenerationMode) Valid() bool {
	switch m {
	case ModeTopic, ModeBullets, ModeContent, ModeSummary:
		return true
	}
	return false
}

// GenerationRequest is the validated input of the slide generation pipeline.
type GenerationRequest struct {
	Title      string         `json:"title" validate:"required,min=1,max=500"`
	Mode       GenerationMode `json:"mode" validate:"required"`
	Input      string         `json:"input" validate:"required,min=1"`
	Audience   string         `json:"audience"`
	Goal       string         `json:"goal"`
	SlideCount int            `json:"slide_count" validate:"omitempty,min=1,max=30"`
}

// Source kinds for ResolvedInput.
const (
	SourceLiteral = "literal"
	SourceCrawled = "crawled"
)

// ResolvedInput is the text the LLM prompt is built from, after any URL
// crawling has happened. SourceKind records whether crawling succeeded.
type ResolvedInput struct {
	Text       string
	SourceKind string
}

// SlideDraft is one slide as produced by the LLM, before persistence.
type SlideDraft struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImagePrompt string `json:"image_prompt"`
}

// Valid reports whether the draft carries enough content to persist.
// Title, content and image prompt must all be non-empty; the parser
// discards anything less.
func (d SlideDraft) Valid() bool {
	return strings.TrimSpace(d.Title) != "" &&
		strings.TrimSpace(d.Content) != "" &&
		strings.TrimSpace(d.ImagePrompt) != ""
}
