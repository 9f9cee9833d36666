package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/errors"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/interactive"
)

// Interactive handles the Q&A practice endpoint
type Interactive struct {
	svc    *interactive.Service
	logger *zap.Logger
}

// NewInteractive creates a new interactive handler
func NewInteractive(svc *interactive.Service, logger *zap.Logger) *Interactive {
	return &Interactive{svc: svc, logger: logger}
}

// Turn runs one interactive Q&A round against a slide
// @Summary      Interactive Q&A turn
// @Description  Generates the assistant's next question or follow-up for the slide, optionally with synthesized speech
// @Tags         Interactive
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      entities.TurnRequest  true  "Turn request; empty message starts the conversation"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}  "Invalid payload"
// @Router       /interactive/turn [post]
func (i *Interactive) Turn(c echo.Context) error {
	var req entities.TurnRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(i.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(i.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	resp, err := i.svc.Turn(c.Request().Context(), req)
	if err != nil {
		return HandleError(i.logger, c, errors.ErrTurnGenerationFailed(err))
	}

	return HandleSuccess(i.logger, c, resp)
}
