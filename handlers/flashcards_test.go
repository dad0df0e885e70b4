package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFlashcard(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "ada@example.com")
	course := testutil.CreateCourse(t, s.db, user.ID, "Algorithms")
	module := testutil.CreateModule(t, s.db, course.ID, "Graphs", models.StatusPlanned)

	t.Run("defaults", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/flashcards", user.ID, map[string]interface{}{
			"moduleId": module.ID,
			"question": "What is BFS?",
			"answer":   "Breadth-first search",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decodeBody(t, rec)
		assert.Equal(t, "MEDIUM", body["difficulty"])
		assert.Equal(t, false, body["isAIGenerated"])
		assert.EqualValues(t, 0, body["reviewCount"])
	})

	t.Run("answer too long", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/flashcards", user.ID, map[string]interface{}{
			"moduleId": module.ID,
			"question": "q",
			"answer":   strings.Repeat("a", 2001),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		details := decodeBody(t, rec)["details"].([]interface{})
		assert.Equal(t, "answer must be at most 2000 characters", details[0].(map[string]interface{})["message"])
	})

	t.Run("foreign module", func(t *testing.T) {
		intruder := testutil.CreateUser(t, s.db, "eve@example.com")
		rec := s.do(t, http.MethodPost, "/api/flashcards", intruder.ID, map[string]interface{}{
			"moduleId": module.ID,
			"question": "q",
			"answer":   "a",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Module not found or access denied", errorMessage(t, rec))
	})
}

func TestListFlashcardsScopedToUser(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "ada@example.com")
	course := testutil.CreateCourse(t, s.db, user.ID, "Algorithms")
	m1 := testutil.CreateModule(t, s.db, course.ID, "Graphs", models.StatusPlanned)
	m2 := testutil.CreateModule(t, s.db, course.ID, "Trees", models.StatusPlanned)
	testutil.CreateFlashcard(t, s.db, m1.ID, "q1")
	testutil.CreateFlashcard(t, s.db, m2.ID, "q2")

	other := testutil.CreateUser(t, s.db, "bob@example.com")
	otherCourse := testutil.CreateCourse(t, s.db, other.ID, "Bob's")
	otherModule := testutil.CreateModule(t, s.db, otherCourse.ID, "Hidden", models.StatusPlanned)
	testutil.CreateFlashcard(t, s.db, otherModule.ID, "secret")

	rec := s.do(t, http.MethodGet, "/api/flashcards", user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["total"])
	assert.NotContains(t, rec.Body.String(), "secret")

	first := body["flashcards"].([]interface{})[0].(map[string]interface{})
	moduleInfo := first["module"].(map[string]interface{})
	assert.Equal(t, "Algorithms", moduleInfo["course"].(map[string]interface{})["title"])

	rec = s.do(t, http.MethodGet, "/api/flashcards?moduleId="+m1.ID, user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["total"])
}

func TestReviewFlashcard(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "ada@example.com")
	course := testutil.CreateCourse(t, s.db, user.ID, "Algorithms")
	module := testutil.CreateModule(t, s.db, course.ID, "Graphs", models.StatusPlanned)
	card := testutil.CreateFlashcard(t, s.db, module.ID, "q1")

	for i := 1; i <= 2; i++ {
		rec := s.do(t, http.MethodPost, "/api/flashcards/"+card.ID+"/review", user.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.EqualValues(t, i, body["reviewCount"])
		assert.NotNil(t, body["lastReviewed"])
	}

	intruder := testutil.CreateUser(t, s.db, "eve@example.com")
	rec := s.do(t, http.MethodPost, "/api/flashcards/"+card.ID+"/review", intruder.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateAndDeleteFlashcard(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "ada@example.com")
	course := testutil.CreateCourse(t, s.db, user.ID, "Algorithms")
	module := testutil.CreateModule(t, s.db, course.ID, "Graphs", models.StatusPlanned)
	card := testutil.CreateFlashcard(t, s.db, module.ID, "q1")

	rec := s.do(t, http.MethodPut, "/api/flashcards/"+card.ID, user.ID, map[string]interface{}{"difficulty": "HARD"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "HARD", body["difficulty"])
	assert.Equal(t, "q1", body["question"])

	rec = s.do(t, http.MethodPut, "/api/flashcards/"+card.ID, user.ID, map[string]interface{}{"difficulty": "BRUTAL"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/flashcards/"+card.ID, user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Flashcard deleted successfully", decodeBody(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/flashcards/"+card.ID, user.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Flashcard not found", errorMessage(t, rec))
}
