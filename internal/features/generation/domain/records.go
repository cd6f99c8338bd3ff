package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Generation is one persisted generation run: the inputs as submitted and
// the normalized records that came back, stored as JSON columns the way the
// original tool kept them.
type Generation struct {
	GenerateID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"generate_id"`
	UserID            string         `gorm:"not null;index" json:"user_id"`
	ProductInfo       datatypes.JSON `gorm:"not null" json:"product_info"`
	Attributes        datatypes.JSON `gorm:"not null" json:"attributes"`
	GeneratedContents datatypes.JSON `gorm:"not null" json:"generated_contents"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
}

func (Generation) TableName() string { return "generations" }

// RegenerateLog records one regeneration request against an earlier
// generation, with the staff-supplied reason and the new result set.
type RegenerateLog struct {
	RegenerateID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"regenerate_id"`
	UserID       string         `gorm:"not null;index" json:"user_id"`
	GenerateID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"generate_id"`
	ReasonText   string         `gorm:"not null" json:"reason_text"`
	NewContents  datatypes.JSON `gorm:"not null" json:"new_contents"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (RegenerateLog) TableName() string { return "regenerate_logs" }

// CopyAction logs a staff member copying one generated version to the
// clipboard, the tool's proxy for "this version was adopted".
type CopyAction struct {
	ActionID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"action_id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	GenerateID uuid.UUID `gorm:"type:uuid;not null;index" json:"generate_id"`
	VersionID  string    `gorm:"not null" json:"version_id"`
	ActionType string    `gorm:"not null;default:'copy'" json:"action_type"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (CopyAction) TableName() string { return "copy_actions" }
