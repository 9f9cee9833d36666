package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// PracticeSessionRepository defines the interface for practice session data access
type PracticeSessionRepository interface {
	// Create creates a new practice session
	Create(ctx context.Context, session *entities.PracticeSession) error

	// FindByID finds a practice session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.PracticeSession, error)

	// ListByPresentationID lists sessions of a presentation, newest first
	ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.PracticeSession, error)

	// Update updates a practice session
	Update(ctx context.Context, session *entities.PracticeSession) error

	// Delete removes a practice session
	Delete(ctx context.Context, id uuid.UUID) error
}
