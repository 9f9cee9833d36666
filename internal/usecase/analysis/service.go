package analysis

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// Service scores a practice delivery from its transcript
type Service struct {
	clarity ClarityModel
	logger  *zap.Logger
}

// NewService constructs the analysis service
func NewService(clarity ClarityModel, logger *zap.Logger) *Service {
	return &Service{clarity: clarity, logger: logger}
}

// Analyze computes delivery feedback. It never returns an error: a
// degraded transcript yields the fixed fallback result without calling
// the clarity model, since scoring substitute text would be meaningless.
func (s *Service) Analyze(ctx context.Context, transcription entities.TranscriptionResult, slideContents []string) entities.AnalysisResult {
	if transcription.Status.Degraded() || transcription.Text == "" {
		if s.logger != nil {
			s.logger.Info("📉 Transcript degraded, returning fallback analysis",
				zap.String("reason", transcription.Status.Reason))
		}
		return entities.NewFallbackAnalysis()
	}

	wpm := WordsPerMinute(transcription.Text, transcription.DurationSeconds)
	paceScore := PaceScore(wpm)

	fillerCounts := CountFillerWords(transcription.Text)
	totalFillers := 0
	for _, fc := range fillerCounts {
		totalFillers += fc.Count
	}
	fillerPerMinute := 0.0
	if transcription.DurationSeconds > 0 {
		fillerPerMinute = float64(totalFillers) / transcription.DurationSeconds * 60
	}
	fillerScore := FillerScore(fillerPerMinute)

	clarity := judgeClarity(ctx, s.clarity, transcription.Text, slideContents, s.logger)

	improvements := buildImprovements(clarity, paceScore, fillerScore, wpm, fillerPerMinute)

	return entities.AnalysisResult{
		Pace: entities.PaceFeedback{
			Score:    paceScore,
			Feedback: PaceFeedback(wpm),
			WPM:      float64(wpm),
		},
		Clarity: entities.ClarityFeedback{
			Score:    clarity.Score,
			Feedback: clarity.Feedback,
		},
		FillerWords: entities.FillerFeedback{
			Score:    fillerScore,
			Feedback: FillerFeedback(fillerPerMinute),
			Total:    totalFillers,
			Words:    fillerCounts,
		},
		Improvements: improvements,
		OverallScore: int(math.Round(float64(paceScore+clarity.Score+fillerScore) / 3)),
	}
}

// buildImprovements merges the clarity suggestions with threshold-driven
// advice, deduplicated in first-seen order.
func buildImprovements(clarity clarityResult, paceScore, fillerScore, wpm int, fillerPerMinute float64) []string {
	var improvements []string
	improvements = append(improvements, clarity.Improvements...)

	if paceScore < 80 {
		improvements = append(improvements, PaceFeedback(wpm))
	}
	if fillerScore < 80 {
		improvements = append(improvements, FillerFeedback(fillerPerMinute))
	}
	if clarity.Score < 75 {
		improvements = append(improvements, "Focus on enunciating each word clearly, especially technical terms found in your slides.")
	}
	if wpm > 160 {
		improvements = append(improvements, "Your speaking pace is quite fast. Try to consciously slow down, especially during complex parts.")
	} else if wpm < 110 && wpm > 0 {
		improvements = append(improvements, "Your speaking pace is a bit slow. Try to inject more energy and vary your pace to keep the audience engaged.")
	}
	if fillerPerMinute > 5 {
		improvements = append(improvements, "Be mindful of filler words like 'um' or 'like'. Practice pausing to gather your thoughts instead.")
	}

	seen := make(map[string]bool, len(improvements))
	unique := improvements[:0]
	for _, item := range improvements {
		if !seen[item] {
			seen[item] = true
			unique = append(unique, item)
		}
	}

	if len(unique) == 0 {
		return []string{"Great job! No specific areas for improvement identified from this analysis."}
	}
	return unique
}
