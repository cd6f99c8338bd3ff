package domain

import "time"

// User is one login session of a staff member. The tool has no real
// authentication; a login just mints a stable-enough id for attributing
// generations and feedback to a person on a team.
type User struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	TeamName  string    `gorm:"not null;index" json:"team_name"`
	UserName  string    `gorm:"not null" json:"user_name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "users" }
