package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PracticeSession is one recorded rehearsal of a presentation.
// Transcription and Analysis are stored as JSONB documents so the
// feedback shape can evolve without schema migrations.
type PracticeSession struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PresentationID  uuid.UUID      `json:"presentation_id" gorm:"type:uuid;not null;index"`
	UserID          *uuid.UUID     `json:"user_id" gorm:"type:uuid;index"`
	AudioURL        string         `json:"audio_url" gorm:"type:text"`
	DurationSeconds float64        `json:"duration_seconds" gorm:"not null;default:0"`
	Transcription   datatypes.JSON `json:"transcription" gorm:"type:jsonb"`
	Analysis        datatypes.JSON `json:"analysis" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// NewPracticeSession creates a session shell before transcription runs
func NewPracticeSession(presentationID uuid.UUID, userID *uuid.UUID) *PracticeSession {
	return &PracticeSession{
		ID:             uuid.New(),
		PresentationID: presentationID,
		UserID:         userID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}
