package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/andrewpaige1/learning-tracker/validation"
	"github.com/rs/zerolog/log"
)

const minNotesLength = 50

var (
	errNotesTooShort = &utils.APIError{
		Message:    "Module notes are too short. Please add at least 50 characters of notes to generate flashcards.",
		StatusCode: http.StatusBadRequest,
	}
	errGenerationFailed = &utils.APIError{
		Message:    "Failed to generate flashcards with AI",
		StatusCode: http.StatusInternalServerError,
	}
)

// POST /api/ai/generate-flashcards
func (db *DBHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req validation.GenerateFlashcardsRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "GenerateFlashcards", access.KindModule, err)
		return
	}

	if err := db.Access.AuthorizeParent(r.Context(), access.KindModule, req.ModuleID, userID); err != nil {
		if errors.Is(err, access.ErrForbidden) {
			parentDenied(w, access.KindModule)
			return
		}
		fail(w, r, "GenerateFlashcards", access.KindModule, err)
		return
	}

	var module models.Module
	if err := db.WithContext(r.Context()).Select("id", "notes").Where("id = ?", req.ModuleID).First(&module).Error; err != nil {
		fail(w, r, "GenerateFlashcards", access.KindModule, err)
		return
	}

	notes := ""
	if module.Notes != nil {
		notes = strings.TrimSpace(*module.Notes)
	}
	if utf8.RuneCountInString(notes) < minNotesLength {
		utils.WriteError(w, errNotesTooShort)
		return
	}

	count := req.CountOrDefault()
	cards, err := db.Generator.Generate(r.Context(), *module.Notes, count)
	if err != nil {
		log.Error().Err(err).Str("module_id", module.ID).Int("count", count).Msg("GenerateFlashcards: generation failed")
		utils.WriteError(w, errGenerationFailed)
		return
	}

	saved := make([]models.Flashcard, len(cards))
	for i, c := range cards {
		saved[i] = models.Flashcard{
			ModuleID:      module.ID,
			Question:      c.Question,
			Answer:        c.Answer,
			Difficulty:    c.Difficulty,
			IsAIGenerated: true,
		}
	}

	// All cards are saved or none are
	tx := db.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		fail(w, r, "GenerateFlashcards", access.KindModule, tx.Error)
		return
	}
	for i := range saved {
		if err := tx.Create(&saved[i]).Error; err != nil {
			tx.Rollback()
			fail(w, r, "GenerateFlashcards", access.KindModule, fmt.Errorf("save card %d: %w", i, err))
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		fail(w, r, "GenerateFlashcards", access.KindModule, fmt.Errorf("commit generated cards: %w", err))
		return
	}

	log.Info().Str("module_id", module.ID).Int("count", len(saved)).Msg("generated flashcards")
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"flashcards": saved,
		"count":      len(saved),
		"message":    fmt.Sprintf("Successfully generated %d flashcards", len(saved)),
	})
}
