package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

type stubClarity struct {
	response string
	err      error
	calls    int
}

func (s *stubClarity) ChatJSON(ctx context.Context, system, user string, temperature float32) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func okTranscript(text string, duration float64) entities.TranscriptionResult {
	return entities.TranscriptionResult{
		Text:            text,
		DurationSeconds: duration,
		Status:          entities.TranscriptionStatus{State: entities.TranscriptionOK},
	}
}

func TestAnalyze_DegradedTranscriptSkipsClarityModel(t *testing.T) {
	clarity := &stubClarity{response: `{"score":90,"feedback":"fine","improvements":[]}`}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), entities.NewDegradedTranscription("provider down", 60), nil)

	if clarity.calls != 0 {
		t.Fatalf("clarity model called %d times for degraded transcript", clarity.calls)
	}
	if result.OverallScore != 75 {
		t.Fatalf("fallback overall score %d want 75", result.OverallScore)
	}
	if result.Pace.Score != 75 || result.Clarity.Score != 75 || result.FillerWords.Score != 75 {
		t.Fatalf("fallback component scores %+v", result)
	}
	if len(result.Improvements) != 2 {
		t.Fatalf("fallback improvements %v", result.Improvements)
	}
}

func TestAnalyze_EmptyTranscriptUsesFallback(t *testing.T) {
	clarity := &stubClarity{}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript("", 60), nil)

	if clarity.calls != 0 {
		t.Fatalf("clarity model called for empty transcript")
	}
	if result.OverallScore != 75 {
		t.Fatalf("overall %d want 75", result.OverallScore)
	}
}

func TestAnalyze_ScoresAndOverall(t *testing.T) {
	// 135 words over 60s, no fillers: pace 95, fillers 95.
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	clarity := &stubClarity{response: `{"score":80,"feedback":"Mostly clear delivery.","improvements":["Slow down on acronyms."]}`}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(text, 60), []string{"slide one"})

	if result.Pace.Score != 95 {
		t.Fatalf("pace score %d want 95", result.Pace.Score)
	}
	if result.Pace.WPM != 135 {
		t.Fatalf("wpm %v want 135", result.Pace.WPM)
	}
	if result.FillerWords.Score != 95 || result.FillerWords.Total != 0 {
		t.Fatalf("filler feedback %+v", result.FillerWords)
	}
	if result.Clarity.Score != 80 || result.Clarity.Feedback != "Mostly clear delivery." {
		t.Fatalf("clarity %+v", result.Clarity)
	}
	// round((95+80+95)/3) = round(90) = 90
	if result.OverallScore != 90 {
		t.Fatalf("overall %d want 90", result.OverallScore)
	}
	if len(result.Improvements) != 1 || result.Improvements[0] != "Slow down on acronyms." {
		t.Fatalf("improvements %v", result.Improvements)
	}
}

func TestAnalyze_ClarityCallFailureDegradesToFixedScore(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	clarity := &stubClarity{err: fmt.Errorf("rate limited")}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(text, 60), nil)

	if result.Clarity.Score != 70 {
		t.Fatalf("clarity score %d want 70", result.Clarity.Score)
	}
	if !strings.Contains(result.Clarity.Feedback, "Clarity analysis via AI failed") {
		t.Fatalf("clarity feedback %q", result.Clarity.Feedback)
	}
	// Pace and filler scoring still run on the real transcript.
	if result.Pace.Score != 95 {
		t.Fatalf("pace score %d want 95", result.Pace.Score)
	}
}

func TestAnalyze_MalformedClarityReplyDegradesToFixedScore(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	clarity := &stubClarity{response: "I think it went well overall!"}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(text, 60), nil)

	if result.Clarity.Score != 70 {
		t.Fatalf("clarity score %d want 70", result.Clarity.Score)
	}
	if !strings.Contains(result.Clarity.Feedback, "unexpected format") {
		t.Fatalf("clarity feedback %q", result.Clarity.Feedback)
	}
}

func TestAnalyze_FencedClarityReplyParses(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	clarity := &stubClarity{response: "```json\n{\"score\":88,\"feedback\":\"Clear.\",\"improvements\":[]}\n```"}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(text, 60), nil)

	if result.Clarity.Score != 88 || result.Clarity.Feedback != "Clear." {
		t.Fatalf("clarity %+v", result.Clarity)
	}
}

func TestAnalyze_ImprovementsThresholds(t *testing.T) {
	// 200 words over 60s: wpm 200, pace score 70. Heavy fillers push the
	// filler rate past 5 per minute.
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("um like word word ")
	}
	clarity := &stubClarity{response: `{"score":60,"feedback":"Hard to follow.","improvements":["Define terms before using them."]}`}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(strings.TrimSpace(sb.String()), 60), nil)

	joined := strings.Join(result.Improvements, "\n")
	if !strings.Contains(joined, "Define terms before using them.") {
		t.Fatalf("clarity improvement missing: %v", result.Improvements)
	}
	if !strings.Contains(joined, "slightly fast") {
		t.Fatalf("pace advice missing for pace score %d: %v", result.Pace.Score, result.Improvements)
	}
	if !strings.Contains(joined, "Practice pausing instead of using filler words.") {
		t.Fatalf("filler advice missing: %v", result.Improvements)
	}
	if !strings.Contains(joined, "enunciating each word clearly") {
		t.Fatalf("low clarity tip missing: %v", result.Improvements)
	}
	if !strings.Contains(joined, "consciously slow down") {
		t.Fatalf("fast pace tip missing: %v", result.Improvements)
	}
	if !strings.Contains(joined, "Be mindful of filler words") {
		t.Fatalf("filler rate tip missing: %v", result.Improvements)
	}
}

func TestAnalyze_ImprovementsDeduped(t *testing.T) {
	// Clarity improvements that repeat the threshold advice must appear once.
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	clarity := &stubClarity{response: `{"score":80,"feedback":"ok","improvements":["Same tip.","Same tip."]}`}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(text, 60), nil)

	count := 0
	for _, item := range result.Improvements {
		if item == "Same tip." {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("duplicate improvement kept %d times: %v", count, result.Improvements)
	}
}

func TestAnalyze_NoImprovementsFallbackMessage(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	clarity := &stubClarity{response: `{"score":95,"feedback":"Excellent clarity.","improvements":[]}`}
	svc := NewService(clarity, nil)

	result := svc.Analyze(context.Background(), okTranscript(text, 60), nil)

	if len(result.Improvements) != 1 || !strings.HasPrefix(result.Improvements[0], "Great job!") {
		t.Fatalf("improvements %v", result.Improvements)
	}
}
