package ai

import (
	"bytes"
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

// AssemblyAIClient wraps the AssemblyAI SDK for practice recording transcription
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
func NewAssemblyAIClient(cfg *config.AssemblyConfig) *AssemblyAIClient {
	return &AssemblyAIClient{
		client: aai.NewClient(cfg.APIKey),
	}
}

// TranscribeBytes uploads the audio and waits for the finished transcript.
// Utterance timestamps come back in milliseconds and are mapped to seconds.
func (c *AssemblyAIClient) TranscribeBytes(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	audioURL, err := c.client.Upload(ctx, bytes.NewReader(audio))
	if err != nil {
		return entities.TranscriptionResult{}, fmt.Errorf("upload audio: %w", err)
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	})
	if err != nil {
		return entities.TranscriptionResult{}, fmt.Errorf("transcribe: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		reason := "transcription failed"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return entities.TranscriptionResult{}, fmt.Errorf("transcribe: %s", reason)
	}

	result := entities.TranscriptionResult{
		Status: entities.TranscriptionStatus{State: entities.TranscriptionOK},
	}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.AudioDuration != nil {
		result.DurationSeconds = *transcript.AudioDuration
	}
	for _, u := range transcript.Utterances {
		seg := entities.TranscriptSegment{}
		if u.Text != nil {
			seg.Text = *u.Text
		}
		if u.Start != nil {
			seg.Start = float64(*u.Start) / 1000.0
		}
		if u.End != nil {
			seg.End = float64(*u.End) / 1000.0
		}
		if u.Confidence != nil {
			seg.Confidence = *u.Confidence
		}
		result.Segments = append(result.Segments, seg)
	}

	return result, nil
}
