package generation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// Parse strategies, in the order they are tried.
const (
	StrategyBareArray  = "bare_array"
	StrategySlidesProp = "slides_prop"
	StrategyFirstArray = "first_array_prop"
)

// ParseOutcome is a successful parse: the extracted drafts and which
// strategy found them.
type ParseOutcome struct {
	Slides   []entities.SlideDraft
	Strategy string
}

// Parser extracts slide drafts from raw model output
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseSlides parses the model output into slide drafts. The output may be
// a bare JSON array, an object with a "slides" property, or an object whose
// first array-valued property holds the slides. Drafts missing any of
// title, content or image prompt are dropped. An error means no strategy
// found a non-empty slide array.
func (p *Parser) ParseSlides(raw string) (ParseOutcome, error) {
	cleaned := extractJSON(raw)

	if drafts, ok := parseArray(cleaned); ok {
		return finish(drafts, StrategyBareArray)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return ParseOutcome{}, fmt.Errorf("model output is neither a JSON array nor an object: %w", err)
	}

	if slidesRaw, exists := obj["slides"]; exists {
		if drafts, ok := parseArray(string(slidesRaw)); ok {
			return finish(drafts, StrategySlidesProp)
		}
	}

	// Fall back to the first array-valued property, by key order for
	// determinism.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if drafts, ok := parseArray(string(obj[k])); ok {
			return finish(drafts, StrategyFirstArray)
		}
	}

	return ParseOutcome{}, fmt.Errorf("could not find slides array in model output")
}

func finish(drafts []entities.SlideDraft, strategy string) (ParseOutcome, error) {
	valid := make([]entities.SlideDraft, 0, len(drafts))
	for _, d := range drafts {
		if d.Valid() {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return ParseOutcome{}, fmt.Errorf("model output contained no usable slides")
	}
	return ParseOutcome{Slides: valid, Strategy: strategy}, nil
}

func parseArray(raw string) ([]entities.SlideDraft, bool) {
	var drafts []entities.SlideDraft
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		return nil, false
	}
	if len(drafts) == 0 {
		return nil, false
	}
	return drafts, true
}

// extractJSON strips markdown code fences the model sometimes wraps its
// JSON output in
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
