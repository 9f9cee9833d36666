package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
)

// PracticeSessionRepository handles practice session data operations
type PracticeSessionRepository struct {
	db *gorm.DB
}

// NewPracticeSessionRepository creates a new practice session repository
func NewPracticeSessionRepository(db *gorm.DB) repositories.PracticeSessionRepository {
	return &PracticeSessionRepository{db: db}
}

// Create creates a new practice session
func (r *PracticeSessionRepository) Create(ctx context.Context, session *entities.PracticeSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID finds a practice session by ID
func (r *PracticeSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.PracticeSession, error) {
	var session entities.PracticeSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// ListByPresentationID lists sessions of a presentation, newest first
func (r *PracticeSessionRepository) ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.PracticeSession, error) {
	var sessions []*entities.PracticeSession
	err := r.db.WithContext(ctx).
		Where("presentation_id = ?", presentationID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update updates a practice session
func (r *PracticeSessionRepository) Update(ctx context.Context, session *entities.PracticeSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete removes a practice session
func (r *PracticeSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PracticeSession{}).Error
}
