package entities

import (
	"time"

	"github.com/google/uuid"
)

// Presentation is a slide deck owned by a user
type Presentation struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string     `json:"title" gorm:"type:varchar(500);not null"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Audience  string     `json:"audience,omitempty" gorm:"type:varchar(255)"`
	Goal      string     `json:"goal,omitempty" gorm:"type:varchar(255)"`
	Slides    []Slide    `json:"slides,omitempty" gorm:"foreignKey:PresentationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Presentation) TableName() string {
	return "presentations"
}

// NewPresentation creates a new presentation
func NewPresentation(title string, userID *uuid.UUID) *Presentation {
	return &Presentation{
		ID:        uuid.New(),
		Title:     title,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
