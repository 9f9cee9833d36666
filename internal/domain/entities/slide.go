package entities

import (
	"time"

	"github.com/google/uuid"
)

// Slide is a single persisted slide within a presentation.
// Order is zero-based and contiguous within a presentation at creation time.
// ImageURL stays nil when image generation fails; the pipeline does not retry.
type Slide struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PresentationID uuid.UUID `json:"presentation_id" gorm:"type:uuid;not null;index"`
	Title          string    `json:"title" gorm:"type:varchar(500);not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	ImageURL       *string   `json:"image_url" gorm:"type:text"`
	Order          int       `json:"order" gorm:"column:slide_order;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Slide) TableName() string {
	return "slides"
}

// NewSlide creates a slide skeleton without an image
func NewSlide(presentationID uuid.UUID, title, content string, order int) *Slide {
	return &Slide{
		ID:             uuid.New(),
		PresentationID: presentationID,
		Title:          title,
		Content:        content,
		Order:          order,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}
