package models

import (
	"time"

	"gorm.io/gorm"
)

type ModuleStatus string

const (
	StatusPlanned    ModuleStatus = "PLANNED"
	StatusInProgress ModuleStatus = "IN_PROGRESS"
	StatusCompleted  ModuleStatus = "COMPLETED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Module is a unit of study inside a course
type Module struct {
	ID             string       `gorm:"primaryKey;size:21" json:"id"`
	CourseID       string       `gorm:"not null;index;size:21" json:"courseId"`
	Title          string       `gorm:"not null;size:200" json:"title"`
	Status         ModuleStatus `gorm:"not null;size:20;index" json:"status"`
	Priority       Priority     `gorm:"not null;size:10" json:"priority"`
	EstimatedHours float64      `gorm:"not null" json:"estimatedHours"`
	ActualHours    *float64     `json:"actualHours"`
	Notes          *string      `gorm:"size:5000" json:"notes"`
	DueDate        *time.Time   `json:"dueDate"`
	CompletedAt    *time.Time   `json:"completedAt"`

	Course        *Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Flashcards    []Flashcard    `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"flashcards,omitempty"`
	StudySessions []StudySession `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"studySessions,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = StatusPlanned
	}
	if m.Priority == "" {
		m.Priority = PriorityMedium
	}
	return assignID(&m.ID)
}
