package models

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// User represents an account that owns courses
type User struct {
	ID            string     `gorm:"primaryKey;size:21" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name          string     `gorm:"size:100" json:"name"`
	PasswordHash  *string    `gorm:"column:password_hash" json:"-"`
	Image         *string    `gorm:"size:500" json:"image,omitempty"`
	EmailVerified *time.Time `json:"emailVerified,omitempty"`

	// Set for accounts that signed in through Auth0
	Auth0ID *string `gorm:"uniqueIndex;size:100" json:"-"`

	Courses []Course `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	return assignID(&u.ID)
}

// assignID fills an empty primary key with a fresh nanoid.
func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	generated, err := gonanoid.New()
	if err != nil {
		return err
	}
	*id = generated
	return nil
}
