package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const claritySystemPrompt = `You are an expert presentation evaluator. Given the following slide contents and a transcript of a spoken presentation, analyze the delivery for CLARITY ONLY:
- Did the speaker cover the key terms from the slides, and were they pronounced clearly?
- Return a JSON object with:
  - "score": (0-100, higher is better for clarity)
  - "feedback": (a short, actionable sentence regarding clarity)
  - "improvements": (an array of 1-2 short, actionable improvement suggestions related to clarity, e.g., "Enunciate technical terms more clearly.")
IMPORTANT: Respond ONLY with the JSON object. Do not include any other text or markdown formatting.`

// ClarityModel is the LLM collaborator for the clarity judgement.
type ClarityModel interface {
	ChatJSON(ctx context.Context, system, user string, temperature float32) (string, error)
}

// clarityResult is the model's judgement plus its improvement suggestions
type clarityResult struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Improvements []string `json:"improvements"`
}

// judgeClarity asks the model to rate delivery clarity against the slide
// contents. It never fails: any model error or malformed reply collapses
// to the fixed fallback score so the rest of the analysis still stands.
func judgeClarity(ctx context.Context, model ClarityModel, transcript string, slideContents []string, logger *zap.Logger) clarityResult {
	user := fmt.Sprintf("Slide Contents:\n%s\n\nTranscript:\n%s",
		strings.Join(slideContents, "\n---\n"), transcript)

	raw, err := model.ChatJSON(ctx, claritySystemPrompt, user, 0.3)
	if err != nil {
		if logger != nil {
			logger.Warn("⚠️ Clarity analysis call failed", zap.Error(err))
		}
		return clarityResult{
			Score:    70,
			Feedback: "Clarity analysis via AI failed. Please ensure your pronunciation is clear.",
			Improvements: []string{
				"Try to enunciate words more distinctly.",
				"Ensure your microphone is positioned correctly.",
			},
		}
	}

	var result clarityResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil || result.Feedback == "" {
		if logger != nil {
			logger.Warn("⚠️ Clarity analysis returned unexpected format", zap.Error(err))
		}
		return clarityResult{
			Score:    70,
			Feedback: "Received an unexpected format from AI for clarity analysis.",
			Improvements: []string{
				"Review your recording for clear speech.",
				"Ensure slide keywords are spoken clearly.",
			},
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result
}

// extractJSON strips markdown code fences the model sometimes wraps its
// JSON output in
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

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
