package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// SlideRepository defines the interface for slide data access
type SlideRepository interface {
	// Create creates a new slide
	Create(ctx context.Context, slide *entities.Slide) error

	// FindByID finds a slide by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Slide, error)

	// ListByPresentationID lists slides of a presentation in display order
	ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.Slide, error)

	// UpdateImageURL sets the stored image URL of a slide
	UpdateImageURL(ctx context.Context, slideID uuid.UUID, imageURL string) error

	// Update updates a slide
	Update(ctx context.Context, slide *entities.Slide) error

	// Delete removes a slide
	Delete(ctx context.Context, id uuid.UUID) error
}
