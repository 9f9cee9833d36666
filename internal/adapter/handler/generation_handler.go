package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/errors"
	"github.com/pitch-assistant-team/pitch-assistant/internal/adapter/stream"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/http/middleware"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/generation"
)

// Generation handles the streaming slide generation endpoint
type Generation struct {
	svc    *generation.Service
	logger *zap.Logger
}

// NewGeneration creates a new generation handler
func NewGeneration(svc *generation.Service, logger *zap.Logger) *Generation {
	return &Generation{svc: svc, logger: logger}
}

// Generate runs the slide generation pipeline and streams progress
// @Summary      Generate a presentation
// @Description  Runs the slide generation pipeline and streams progress as server-sent events
// @Tags         Generation
// @Accept       json
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        request  body      entities.GenerationRequest  true  "Generation request"
// @Success      200      {string}  string                      "SSE stream of progress events"
// @Failure      400      {object}  map[string]interface{}      "Invalid payload"
// @Router       /presentations/generate [post]
func (g *Generation) Generate(c echo.Context) error {
	var req entities.GenerationRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(g.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(g.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	var userID *uuid.UUID
	if v := c.Get(middleware.UserIDKey); v != nil {
		if id, ok := v.(uuid.UUID); ok {
			userID = &id
		}
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(200)
	resp.Flush()

	sink := stream.NewEncoder(resp)

	if g.logger != nil {
		g.logger.Info("🎬 Starting generation stream",
			zap.String("mode", string(req.Mode)),
			zap.String("title", req.Title))
	}

	// Errors surface to the client as stream events; the HTTP status is
	// already committed by the time anything can fail.
	if err := g.svc.Generate(c.Request().Context(), userID, req, sink); err != nil && g.logger != nil {
		g.logger.Error("❌ Generation stream ended with error", zap.Error(err))
	}

	return nil
}
