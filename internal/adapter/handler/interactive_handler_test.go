package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/interactive"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/ai"
	pkgvalidator "github.com/pitch-assistant-team/pitch-assistant/pkg/validator"
)

type fixedSlideRepo struct {
	slide *entities.Slide
}

func (r *fixedSlideRepo) Create(ctx context.Context, slide *entities.Slide) error { return nil }

func (r *fixedSlideRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Slide, error) {
	return r.slide, nil
}

func (r *fixedSlideRepo) ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.Slide, error) {
	return nil, nil
}

func (r *fixedSlideRepo) UpdateImageURL(ctx context.Context, slideID uuid.UUID, imageURL string) error {
	return nil
}

func (r *fixedSlideRepo) Update(ctx context.Context, slide *entities.Slide) error { return nil }
func (r *fixedSlideRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

type fixedChat struct {
	reply string
}

func (f *fixedChat) Chat(ctx context.Context, system string, history []ai.Message, user string, temperature float32) (string, error) {
	return f.reply, nil
}

type noSpeech struct{}

func (noSpeech) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	return []byte("wav"), "audio/wav", nil
}

func newInteractiveHandler(slide *entities.Slide) *Interactive {
	svc := interactive.NewService(&fixedSlideRepo{slide: slide}, &fixedChat{reply: "What is your main differentiator?"}, noSpeech{}, nil)
	return NewInteractive(svc, nil)
}

func TestInteractiveTurn_Success(t *testing.T) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	slide := &entities.Slide{ID: uuid.New(), Title: "Traction", Content: "10k users."}
	h := newInteractiveHandler(slide)

	body := `{"slide_id":"` + slide.ID.String() + `","message":"","history":[]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/interactive/turn", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Turn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d want 200: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Code string                `json:"code"`
		Data entities.TurnResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != "OK" {
		t.Fatalf("code %q", envelope.Code)
	}
	if envelope.Data.Reply != "What is your main differentiator?" {
		t.Fatalf("reply %q", envelope.Data.Reply)
	}
	if len(envelope.Data.History) != 1 {
		t.Fatalf("history %+v", envelope.Data.History)
	}
}

func TestInteractiveTurn_MissingSlideID(t *testing.T) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	h := newInteractiveHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/interactive/turn", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Turn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestInteractiveTurn_MalformedBody(t *testing.T) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	h := newInteractiveHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/interactive/turn", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Turn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d want 400: %s", rec.Code, rec.Body.String())
	}
}
