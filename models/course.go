package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultCourseColor = "#4ADE80"

// Course groups modules under a single owner
type Course struct {
	ID                  string  `gorm:"primaryKey;size:21" json:"id"`
	UserID              string  `gorm:"not null;index;size:21" json:"userId"`
	Title               string  `gorm:"not null;size:200" json:"title"`
	Description         *string `gorm:"size:1000" json:"description"`
	TotalEstimatedHours float64 `gorm:"not null" json:"totalEstimatedHours"`
	Color               string  `gorm:"not null;size:7" json:"color"`

	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.Color == "" {
		c.Color = DefaultCourseColor
	}
	return assignID(&c.ID)
}

// Progress is the per-status module count for a course, computed on read.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Planned    int `json:"planned"`
}

// ProgressOf tallies module statuses.
func ProgressOf(statuses []ModuleStatus) Progress {
	p := Progress{Total: len(statuses)}
	for _, s := range statuses {
		switch s {
		case StatusCompleted:
			p.Completed++
		case StatusInProgress:
			p.InProgress++
		case StatusPlanned:
			p.Planned++
		}
	}
	return p
}
