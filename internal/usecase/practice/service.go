package practice

import (
	"context"
	"encoding/json"
	"fmt"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/analysis"
)

// Transcriber converts a recorded rehearsal into a transcript.
type Transcriber interface {
	TranscribeBytes(ctx context.Context, audio []byte) (entities.TranscriptionResult, error)
}

// AudioStore persists recordings and returns their public URL.
type AudioStore interface {
	UploadPracticeAudio(ctx context.Context, sessionID uuid.UUID, data []byte, contentType string) (string, error)
}

// Service runs the practice analysis pipeline: store the recording,
// transcribe it, score the delivery and persist the session.
type Service struct {
	sessionRepo repositories.PracticeSessionRepository
	slideRepo   repositories.SlideRepository
	transcriber Transcriber
	store       AudioStore
	analyzer    *analysis.Service
	logger      *zap.Logger
}

// NewService constructs the practice service
func NewService(
	sessionRepo repositories.PracticeSessionRepository,
	slideRepo repositories.SlideRepository,
	transcriber Transcriber,
	store AudioStore,
	analyzer *analysis.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		slideRepo:   slideRepo,
		transcriber: transcriber,
		store:       store,
		analyzer:    analyzer,
		logger:      logger,
	}
}

// Process runs the pipeline for one recording. Transcription failures
// degrade to a fallback transcript instead of failing the session; only
// storage errors abort.
func (s *Service) Process(ctx context.Context, presentationID uuid.UUID, userID *uuid.UUID, audio []byte, contentType string, durationSeconds float64) (*entities.PracticeSession, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("audio is empty")
	}

	session := entities.NewPracticeSession(presentationID, userID)

	audioURL, err := s.store.UploadPracticeAudio(ctx, session.ID, audio, contentType)
	if err != nil {
		return nil, fmt.Errorf("store recording: %w", err)
	}
	session.AudioURL = audioURL

	transcription := s.transcribe(ctx, audio, durationSeconds)
	if transcription.DurationSeconds == 0 {
		transcription.DurationSeconds = durationSeconds
	}
	session.DurationSeconds = transcription.DurationSeconds

	slideContents, err := s.slideContents(ctx, presentationID)
	if err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Could not load slide contents for analysis", zap.Error(err))
	}

	result := s.analyzer.Analyze(ctx, transcription, slideContents)

	if session.Transcription, err = marshalJSON(transcription); err != nil {
		return nil, fmt.Errorf("encode transcription: %w", err)
	}
	if session.Analysis, err = marshalJSON(result); err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Practice session processed",
			zap.String("session_id", session.ID.String()),
			zap.String("presentation_id", presentationID.String()),
			zap.Bool("degraded", transcription.Status.Degraded()),
			zap.Int("overall_score", result.OverallScore))
	}

	return session, nil
}

// transcribe calls the provider with retry. If every attempt fails the
// session still proceeds with the degraded fallback transcript.
func (s *Service) transcribe(ctx context.Context, audio []byte, durationSeconds float64) entities.TranscriptionResult {
	var result entities.TranscriptionResult
	operation := func() error {
		var err error
		result, err = s.transcriber.TranscribeBytes(ctx, audio)
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Transcription failed, using degraded fallback", zap.Error(err))
		}
		return entities.NewDegradedTranscription(err.Error(), durationSeconds)
	}
	return result
}

func (s *Service) slideContents(ctx context.Context, presentationID uuid.UUID) ([]string, error) {
	slides, err := s.slideRepo.ListByPresentationID(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	contents := make([]string, 0, len(slides))
	for _, slide := range slides {
		contents = append(contents, slide.Content)
	}
	return contents, nil
}

func marshalJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
