package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
)

// SlideRepository handles slide data operations
type SlideRepository struct {
	db *gorm.DB
}

// NewSlideRepository creates a new slide repository
func NewSlideRepository(db *gorm.DB) repositories.SlideRepository {
	return &SlideRepository{db: db}
}

// Create creates a new slide
func (r *SlideRepository) Create(ctx context.Context, slide *entities.Slide) error {
	if slide == nil {
		return errors.New("slide cannot be nil")
	}
	return r.db.WithContext(ctx).Create(slide).Error
}

// FindByID finds a slide by ID
func (r *SlideRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Slide, error) {
	var slide entities.Slide
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slide).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slide, nil
}

// ListByPresentationID lists slides of a presentation in display order
func (r *SlideRepository) ListByPresentationID(ctx context.Context, presentationID uuid.UUID) ([]*entities.Slide, error) {
	var slides []*entities.Slide
	err := r.db.WithContext(ctx).
		Where("presentation_id = ?", presentationID).
		Order("slide_order ASC").
		Find(&slides).Error
	if err != nil {
		return nil, err
	}
	return slides, nil
}

// UpdateImageURL sets the stored image URL of a slide
func (r *SlideRepository) UpdateImageURL(ctx context.Context, slideID uuid.UUID, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Slide{}).
		Where("id = ?", slideID).
		Updates(map[string]interface{}{
			"image_url":  imageURL,
			"updated_at": time.Now(),
		}).Error
}

// Update updates a slide
func (r *SlideRepository) Update(ctx context.Context, slide *entities.Slide) error {
	if slide == nil {
		return errors.New("slide cannot be nil")
	}
	return r.db.WithContext(ctx).Save(slide).Error
}

// Delete removes a slide
func (r *SlideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Slide{}).Error
}
