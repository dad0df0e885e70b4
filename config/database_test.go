package config

import (
	"testing"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	assert.Equal(t, "postgres", dialectorFor("postgres://u:p@localhost:5432/db").Name())
	assert.Equal(t, "postgres", dialectorFor("postgresql://u:p@localhost:5432/db").Name())
	assert.Equal(t, "sqlite", dialectorFor("file:tracker.db?_foreign_keys=on").Name())
}

func TestConnectMigrates(t *testing.T) {
	db, err := Connect("file:config_connect?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	for _, model := range []interface{}{&models.User{}, &models.Course{}, &models.Module{}, &models.Flashcard{}, &models.StudySession{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
