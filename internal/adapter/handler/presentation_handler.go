package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/errors"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/http/middleware"
)

// Presentation handles presentation CRUD endpoints
type Presentation struct {
	presentationRepo repositories.PresentationRepository
	slideRepo        repositories.SlideRepository
	logger           *zap.Logger
}

// NewPresentation creates a new presentation handler
func NewPresentation(presentationRepo repositories.PresentationRepository, slideRepo repositories.SlideRepository, logger *zap.Logger) *Presentation {
	return &Presentation{
		presentationRepo: presentationRepo,
		slideRepo:        slideRepo,
		logger:           logger,
	}
}

// List lists the caller's presentations
// @Summary      List presentations
// @Tags         Presentations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /presentations [get]
func (p *Presentation) List(c echo.Context) error {
	v := c.Get(middleware.UserIDKey)
	userID, ok := v.(uuid.UUID)
	if !ok {
		return HandleError(p.logger, c, errors.ErrUnauthenticated())
	}

	presentations, err := p.presentationRepo.ListByUserID(c.Request().Context(), userID)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("list presentations", err))
	}

	return HandleSuccess(p.logger, c, presentations)
}

// Get fetches one presentation with its slides in order
// @Summary      Get a presentation
// @Tags         Presentations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Presentation ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /presentations/{id} [get]
func (p *Presentation) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInvalidArgument("invalid presentation ID"))
	}

	presentation, err := p.presentationRepo.FindByIDWithSlides(c.Request().Context(), id)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("find presentation", err))
	}
	if presentation == nil {
		return HandleError(p.logger, c, errors.ErrNotFound("Presentation"))
	}

	return HandleSuccess(p.logger, c, presentation)
}

// Delete removes a presentation together with its slides
// @Summary      Delete a presentation
// @Tags         Presentations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Presentation ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /presentations/{id} [delete]
func (p *Presentation) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInvalidArgument("invalid presentation ID"))
	}

	presentation, err := p.presentationRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("find presentation", err))
	}
	if presentation == nil {
		return HandleError(p.logger, c, errors.ErrNotFound("Presentation"))
	}

	if err := p.presentationRepo.Delete(c.Request().Context(), id); err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("delete presentation", err))
	}

	return HandleSuccess(p.logger, c, map[string]interface{}{"deleted": id})
}

// ListSlides lists a presentation's slides in display order
// @Summary      List slides
// @Tags         Presentations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Presentation ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Router       /presentations/{id}/slides [get]
func (p *Presentation) ListSlides(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(p.logger, c, errors.ErrInvalidArgument("invalid presentation ID"))
	}

	slides, err := p.slideRepo.ListByPresentationID(c.Request().Context(), id)
	if err != nil {
		return HandleError(p.logger, c, errors.ErrDBQueryFailed("list slides", err))
	}

	return HandleSuccess(p.logger, c, slides)
}
