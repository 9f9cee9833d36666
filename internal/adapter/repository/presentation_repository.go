package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
)

// PresentationRepository handles presentation data operations
type PresentationRepository struct {
	db *gorm.DB
}

// NewPresentationRepository creates a new presentation repository
func NewPresentationRepository(db *gorm.DB) repositories.PresentationRepository {
	return &PresentationRepository{db: db}
}

// Create creates a new presentation
func (r *PresentationRepository) Create(ctx context.Context, presentation *entities.Presentation) error {
	if presentation == nil {
		return errors.New("presentation cannot be nil")
	}
	return r.db.WithContext(ctx).Create(presentation).Error
}

// FindByID finds a presentation by ID
func (r *PresentationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Presentation, error) {
	var presentation entities.Presentation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&presentation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &presentation, nil
}

// FindByIDWithSlides finds a presentation with its slides in display order
func (r *PresentationRepository) FindByIDWithSlides(ctx context.Context, id uuid.UUID) (*entities.Presentation, error) {
	var presentation entities.Presentation
	err := r.db.WithContext(ctx).
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_order ASC")
		}).
		Where("id = ?", id).
		First(&presentation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &presentation, nil
}

// ListByUserID lists presentations belonging to a user, newest first
func (r *PresentationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Presentation, error) {
	var presentations []*entities.Presentation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&presentations).Error
	if err != nil {
		return nil, err
	}
	return presentations, nil
}

// Update updates a presentation
func (r *PresentationRepository) Update(ctx context.Context, presentation *entities.Presentation) error {
	if presentation == nil {
		return errors.New("presentation cannot be nil")
	}
	return r.db.WithContext(ctx).Save(presentation).Error
}

// Delete removes a presentation. Slides go with it via the FK cascade.
func (r *PresentationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Presentation{}).Error
}
