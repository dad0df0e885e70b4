package config

import (
	"fmt"
	"strings"

	"github.com/andrewpaige1/learning-tracker/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by dbURL and migrates the schema.
// postgres:// and postgresql:// URLs use Postgres, anything else is a SQLite DSN.
func Connect(dbURL string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dbURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the app uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Module{},
		&models.Flashcard{},
		&models.StudySession{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}

func dialectorFor(dbURL string) gorm.Dialector {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return postgres.Open(dbURL)
	}
	return sqlite.Open(dbURL)
}
