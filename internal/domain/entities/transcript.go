package entities

// Transcription states.
const (
	TranscriptionOK       = "ok"
	TranscriptionDegraded = "degraded"
)

// TranscriptionStatus tags a transcription result with whether the real
// speech-to-text provider produced it or a fallback was substituted.
type TranscriptionStatus struct {
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// Degraded reports whether the transcript is a fallback substitute.
func (s TranscriptionStatus) Degraded() bool {
	return s.State == TranscriptionDegraded
}

// TranscriptSegment is one timed utterance. Start and End are seconds.
type TranscriptSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionResult is the outcome of transcribing a practice recording.
type TranscriptionResult struct {
	Text            string              `json:"text"`
	Segments        []TranscriptSegment `json:"segments,omitempty"`
	DurationSeconds float64             `json:"duration_seconds"`
	Status          TranscriptionStatus `json:"status"`
}

const degradedTranscriptText = "Unable to transcribe audio. Please try recording again with clearer audio."

// NewDegradedTranscription builds the fallback result used when the
// transcription provider is unavailable or returns an error.
func NewDegradedTranscription(reason string, durationSeconds float64) TranscriptionResult {
	return TranscriptionResult{
		Text:            degradedTranscriptText,
		DurationSeconds: durationSeconds,
		Status: TranscriptionStatus{
			State:  TranscriptionDegraded,
			Reason: reason,
		},
	}
}
