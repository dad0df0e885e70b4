// Package testutil opens throwaway SQLite databases and seeds them.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/andrewpaige1/learning-tracker/config"
	"github.com/andrewpaige1/learning-tracker/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name()) + "_" + gonanoid.Must(8)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: strings.Split(email, "@")[0]}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCourse(t *testing.T, db *gorm.DB, userID, title string) *models.Course {
	t.Helper()
	course := &models.Course{UserID: userID, Title: title}
	require.NoError(t, db.Create(course).Error)
	return course
}

func CreateModule(t *testing.T, db *gorm.DB, courseID, title string, status models.ModuleStatus) *models.Module {
	t.Helper()
	module := &models.Module{CourseID: courseID, Title: title, Status: status, EstimatedHours: 2}
	require.NoError(t, db.Create(module).Error)
	return module
}

func CreateFlashcard(t *testing.T, db *gorm.DB, moduleID, question string) *models.Flashcard {
	t.Helper()
	card := &models.Flashcard{ModuleID: moduleID, Question: question, Answer: "answer to " + question}
	require.NoError(t, db.Create(card).Error)
	return card
}

func CreateStudySession(t *testing.T, db *gorm.DB, moduleID string, minutes int) *models.StudySession {
	t.Helper()
	session := &models.StudySession{ModuleID: moduleID, DurationMinutes: minutes}
	require.NoError(t, db.Create(session).Error)
	return session
}
