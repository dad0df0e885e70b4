package models

import (
	"time"

	"gorm.io/gorm"
)

// StudySession records time spent on a module
type StudySession struct {
	ID              string    `gorm:"primaryKey;size:21" json:"id"`
	ModuleID        string    `gorm:"not null;index;size:21" json:"moduleId"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Notes           *string   `json:"notes"`
	StartedAt       time.Time `gorm:"not null" json:"startedAt"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *StudySession) BeforeCreate(tx *gorm.DB) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	return assignID(&s.ID)
}
