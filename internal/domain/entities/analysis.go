package entities

// PaceFeedback is the pace portion of a delivery analysis. WPM is the
// computed words-per-minute rate the score was bucketed from.
type PaceFeedback struct {
	Score    int     `json:"score"`
	Feedback string  `json:"feedback"`
	WPM      float64 `json:"wpm"`
}

// ClarityFeedback is the AI-judged clarity portion of a delivery analysis.
type ClarityFeedback struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// FillerWordCount is one filler word and how often it occurred.
type FillerWordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FillerFeedback is the filler-word portion of a delivery analysis.
type FillerFeedback struct {
	Score    int               `json:"score"`
	Feedback string            `json:"feedback"`
	Total    int               `json:"total"`
	Words    []FillerWordCount `json:"words,omitempty"`
}

// AnalysisResult is the full delivery feedback for a practice session.
// OverallScore is the rounded mean of the three component scores.
type AnalysisResult struct {
	Pace         PaceFeedback    `json:"pace"`
	Clarity      ClarityFeedback `json:"clarity"`
	FillerWords  FillerFeedback  `json:"filler_words"`
	Improvements []string        `json:"improvements"`
	OverallScore int             `json:"overall_score"`
}

// NewFallbackAnalysis is the fixed result returned when the transcript is
// degraded and no meaningful analysis can run.
func NewFallbackAnalysis() AnalysisResult {
	return AnalysisResult{
		Pace: PaceFeedback{
			Score:    75,
			Feedback: "We couldn't measure your pace this time. Aim for 120-150 words per minute.",
		},
		Clarity: ClarityFeedback{
			Score:    75,
			Feedback: "We couldn't assess clarity this time. Speak in complete sentences and pause between ideas.",
		},
		FillerWords: FillerFeedback{
			Score:    75,
			Feedback: "We couldn't count filler words this time. Watch out for 'um', 'uh' and 'like'.",
		},
		Improvements: []string{
			"Record in a quiet environment with the microphone close to you.",
			"Try the practice session again to get detailed feedback.",
		},
		OverallScore: 75,
	}
}
