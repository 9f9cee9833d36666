package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// PresentationRepository defines the interface for presentation data access
type PresentationRepository interface {
	// Create creates a new presentation
	Create(ctx context.Context, presentation *entities.Presentation) error

	// FindByID finds a presentation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Presentation, error)

	// FindByIDWithSlides finds a presentation with its slides in display order
	FindByIDWithSlides(ctx context.Context, id uuid.UUID) (*entities.Presentation, error)

	// ListByUserID lists presentations belonging to a user, newest first
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Presentation, error)

	// Update updates a presentation
	Update(ctx context.Context, presentation *entities.Presentation) error

	// Delete removes a presentation and its slides
	Delete(ctx context.Context, id uuid.UUID) error
}
