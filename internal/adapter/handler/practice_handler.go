package handler

import (
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/errors"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/http/middleware"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/practice"
)

// Practice handles practice session endpoints
type Practice struct {
	svc         *practice.Service
	sessionRepo repositories.PracticeSessionRepository
	logger      *zap.Logger
}

// NewPractice creates a new practice handler
func NewPractice(svc *practice.Service, sessionRepo repositories.PracticeSessionRepository, logger *zap.Logger) *Practice {
	return &Practice{svc: svc, sessionRepo: sessionRepo, logger: logger}
}

// Analyze accepts a practice recording and returns the scored session
// @Summary      Analyze a practice recording
// @Description  Uploads the rehearsal audio, transcribes it and returns delivery feedback
// @Tags         Practice
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Presentation ID (UUID)"
// @Param        audio     formData  file    true   "Recorded audio"
// @Param        duration  formData  number  false  "Recording duration in seconds"
// @Success      200       {object}  map[string]interface{}  "Scored practice session"
// @Failure      400       {object}  map[string]interface{}  "Missing audio or invalid presentation ID"
// @Router       /presentations/{id}/practice [post]
func (p *Practice) Analyze(c echo.Context) error {
	presentationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInvalidArgument("invalid presentation ID"))
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(p.logger, c, errors.ErrMissingAudio())
	}
	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInternal(err))
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInternal(err))
	}

	duration := 0.0
	if v := c.FormValue("duration"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			duration = parsed
		}
	}

	var userID *uuid.UUID
	if v := c.Get(middleware.UserIDKey); v != nil {
		if id, ok := v.(uuid.UUID); ok {
			userID = &id
		}
	}

	session, err := p.svc.Process(c.Request().Context(), presentationID, userID, audio, fileHeader.Header.Get("Content-Type"), duration)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrAnalysisFailed(err))
	}

	return HandleSuccess(p.logger, c, session)
}

// ListSessions lists practice sessions for a presentation
// @Summary      List practice sessions
// @Tags         Practice
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Presentation ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Router       /presentations/{id}/practice [get]
func (p *Practice) ListSessions(c echo.Context) error {
	presentationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInvalidArgument("invalid presentation ID"))
	}

	sessions, err := p.sessionRepo.ListByPresentationID(c.Request().Context(), presentationID)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("list practice sessions", err))
	}

	return HandleSuccess(p.logger, c, sessions)
}

// GetSession fetches one practice session
// @Summary      Get a practice session
// @Tags         Practice
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /practice-sessions/{id} [get]
func (p *Practice) GetSession(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInvalidArgument("invalid session ID"))
	}

	session, err := p.sessionRepo.FindByID(c.Request().Context(), sessionID)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("find practice session", err))
	}
	if session == nil {
		return HandleError(p.logger, c, errors.ErrNotFound("Practice session"))
	}

	return HandleSuccess(p.logger, c, session)
}
