package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/analysis"
)

type stubTranscriber struct {
	result entities.TranscriptionResult
	err    error
	calls  int
}

func (s *stubTranscriber) TranscribeBytes(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	s.calls++
	if s.err != nil {
		return entities.TranscriptionResult{}, s.err
	}
	return s.result, nil
}

type stubAudioStore struct {
	err error
}

func (s *stubAudioStore) UploadPracticeAudio(ctx context.Context, sessionID uuid.UUID, data []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("http://storage.local/practice/%s/recording", sessionID), nil
}

type stubSessionRepo struct {
	created *entities.PracticeSession
	err     error
}

func (s *stubSessionRepo) Create(ctx context.Context, session *entities.PracticeSession) error {
	if s.err != nil {
		return s.err
	}
	s.created = session
	return nil
}

func (s *stubSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.PracticeSession, error) {
	return nil, nil
}

func (s *stubSessionRepo) ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.PracticeSession, error) {
	return nil, nil
}

func (s *stubSessionRepo) Update(ctx context.Context, session *entities.PracticeSession) error {
	return nil
}

func (s *stubSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubSlideRepo struct {
	slides []*entities.Slide
	err    error
}

func (s *stubSlideRepo) Create(ctx context.Context, slide *entities.Slide) error { return nil }

func (s *stubSlideRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Slide, error) {
	return nil, nil
}

func (s *stubSlideRepo) ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.Slide, error) {
	return s.slides, s.err
}

func (s *stubSlideRepo) UpdateImageURL(ctx context.Context, slideID uuid.UUID, imageURL string) error {
	return nil
}

func (s *stubSlideRepo) Update(ctx context.Context, slide *entities.Slide) error { return nil }
func (s *stubSlideRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

type stubClarity struct{}

func (stubClarity) ChatJSON(ctx context.Context, system, user string, temperature float32) (string, error) {
	return `{"score":85,"feedback":"Clear delivery.","improvements":[]}`, nil
}

func okTranscription(text string, duration float64) entities.TranscriptionResult {
	return entities.TranscriptionResult{
		Text:            text,
		DurationSeconds: duration,
		Status:          entities.TranscriptionStatus{State: entities.TranscriptionOK},
	}
}

func newTestService(transcriber *stubTranscriber, store *stubAudioStore, sessions *stubSessionRepo, slides *stubSlideRepo) *Service {
	analyzer := analysis.NewService(stubClarity{}, nil)
	return NewService(sessions, slides, transcriber, store, analyzer, nil)
}

func TestProcess_HappyPath(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 135))
	transcriber := &stubTranscriber{result: okTranscription(text, 60)}
	sessions := &stubSessionRepo{}
	slides := &stubSlideRepo{slides: []*entities.Slide{{Content: "slide body"}}}
	svc := newTestService(transcriber, &stubAudioStore{}, sessions, slides)

	presentationID := uuid.New()
	session, err := svc.Process(context.Background(), presentationID, nil, []byte("audio"), "audio/webm", 58)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if sessions.created == nil || sessions.created.ID != session.ID {
		t.Fatalf("session not persisted")
	}
	if session.PresentationID != presentationID {
		t.Fatalf("presentation id %s", session.PresentationID)
	}
	if !strings.Contains(session.AudioURL, session.ID.String()) {
		t.Fatalf("audio url %q", session.AudioURL)
	}
	// Provider duration wins over the client-reported one.
	if session.DurationSeconds != 60 {
		t.Fatalf("duration %v want 60", session.DurationSeconds)
	}

	var storedAnalysis entities.AnalysisResult
	if err := json.Unmarshal(session.Analysis, &storedAnalysis); err != nil {
		t.Fatalf("decode stored analysis: %v", err)
	}
	if storedAnalysis.Pace.Score != 95 || storedAnalysis.Clarity.Score != 85 {
		t.Fatalf("stored analysis %+v", storedAnalysis)
	}

	var storedTranscription entities.TranscriptionResult
	if err := json.Unmarshal(session.Transcription, &storedTranscription); err != nil {
		t.Fatalf("decode stored transcription: %v", err)
	}
	if storedTranscription.Status.Degraded() {
		t.Fatalf("transcription should not be degraded")
	}
}

func TestProcess_EmptyAudioRejected(t *testing.T) {
	svc := newTestService(&stubTranscriber{}, &stubAudioStore{}, &stubSessionRepo{}, &stubSlideRepo{})

	if _, err := svc.Process(context.Background(), uuid.New(), nil, nil, "audio/webm", 0); err == nil {
		t.Fatalf("expected error for empty audio")
	}
}

func TestProcess_StorageFailureAborts(t *testing.T) {
	sessions := &stubSessionRepo{}
	svc := newTestService(&stubTranscriber{}, &stubAudioStore{err: fmt.Errorf("bucket gone")}, sessions, &stubSlideRepo{})

	if _, err := svc.Process(context.Background(), uuid.New(), nil, []byte("audio"), "audio/webm", 10); err == nil {
		t.Fatalf("expected error when storage fails")
	}
	if sessions.created != nil {
		t.Fatalf("session must not be persisted after storage failure")
	}
}

func TestProcess_TranscriptionFailureDegrades(t *testing.T) {
	transcriber := &stubTranscriber{err: fmt.Errorf("provider down")}
	sessions := &stubSessionRepo{}
	svc := newTestService(transcriber, &stubAudioStore{}, sessions, &stubSlideRepo{})

	session, err := svc.Process(context.Background(), uuid.New(), nil, []byte("audio"), "audio/webm", 42)
	if err != nil {
		t.Fatalf("degraded transcription must not fail the session: %v", err)
	}

	// Initial attempt plus two retries.
	if transcriber.calls != 3 {
		t.Fatalf("transcriber calls %d want 3", transcriber.calls)
	}

	var stored entities.TranscriptionResult
	if err := json.Unmarshal(session.Transcription, &stored); err != nil {
		t.Fatalf("decode transcription: %v", err)
	}
	if !stored.Status.Degraded() {
		t.Fatalf("transcription should be degraded: %+v", stored.Status)
	}
	if stored.DurationSeconds != 42 {
		t.Fatalf("duration %v want client-reported 42", stored.DurationSeconds)
	}

	var storedAnalysis entities.AnalysisResult
	if err := json.Unmarshal(session.Analysis, &storedAnalysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if storedAnalysis.OverallScore != 75 {
		t.Fatalf("degraded analysis overall %d want 75", storedAnalysis.OverallScore)
	}
}

func TestProcess_SlideLoadFailureContinues(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 120))
	transcriber := &stubTranscriber{result: okTranscription(text, 60)}
	sessions := &stubSessionRepo{}
	slides := &stubSlideRepo{err: fmt.Errorf("db timeout")}
	svc := newTestService(transcriber, &stubAudioStore{}, sessions, slides)

	if _, err := svc.Process(context.Background(), uuid.New(), nil, []byte("audio"), "audio/webm", 60); err != nil {
		t.Fatalf("slide load failure must not abort: %v", err)
	}
	if sessions.created == nil {
		t.Fatalf("session not persisted")
	}
}

func TestProcess_ZeroProviderDurationFallsBack(t *testing.T) {
	transcriber := &stubTranscriber{result: okTranscription("a few words here", 0)}
	sessions := &stubSessionRepo{}
	svc := newTestService(transcriber, &stubAudioStore{}, sessions, &stubSlideRepo{})

	session, err := svc.Process(context.Background(), uuid.New(), nil, []byte("audio"), "audio/webm", 33)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if session.DurationSeconds != 33 {
		t.Fatalf("duration %v want 33", session.DurationSeconds)
	}
}
