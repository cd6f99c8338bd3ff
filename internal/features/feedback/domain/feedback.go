package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one staff rating of a generated version. Rating is a 1-5
// score; Comment is optional free text.
type Feedback struct {
	FeedbackID uuid.UUID `gorm:"type:uuid;primaryKey" json:"feedback_id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	GenerateID uuid.UUID `gorm:"type:uuid;not null;index" json:"generate_id"`
	VersionID  string    `gorm:"not null" json:"version_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Feedback) TableName() string { return "feedbacks" }
