package models

import (
	"time"

	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Valid reports whether d is one of the three known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Flashcard represents a question/answer pair attached to a module
type Flashcard struct {
	ID         string     `gorm:"primaryKey;size:21" json:"id"`
	ModuleID   string     `gorm:"not null;index;size:21" json:"moduleId"`
	Question   string     `gorm:"not null;size:1000" json:"question"`
	Answer     string     `gorm:"not null;size:2000" json:"answer"`
	Difficulty Difficulty `gorm:"not null;size:10" json:"difficulty"`

	IsAIGenerated bool       `gorm:"column:is_ai_generated;not null;default:false" json:"isAIGenerated"`
	ReviewCount   int        `gorm:"not null;default:0" json:"reviewCount"`
	LastReviewed  *time.Time `json:"lastReviewed"`

	Module *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.Difficulty == "" {
		f.Difficulty = DifficultyMedium
	}
	return assignID(&f.ID)
}
