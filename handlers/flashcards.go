package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/andrewpaige1/learning-tracker/validation"
	"gorm.io/gorm"
)

type moduleSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Course struct {
		Title string `json:"title"`
	} `json:"course"`
}

type flashcardItem struct {
	models.Flashcard
	Module *moduleSummary `json:"module,omitempty"`
}

func withModule(card models.Flashcard) flashcardItem {
	item := flashcardItem{Flashcard: card}
	if card.Module != nil {
		item.Module = &moduleSummary{ID: card.Module.ID, Title: card.Module.Title}
		if card.Module.Course != nil {
			item.Module.Course.Title = card.Module.Course.Title
		}
	}
	item.Flashcard.Module = nil
	return item
}

func preloadModuleSummary(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Module", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title", "course_id")
		}).
		Preload("Module.Course", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title")
		})
}

// GET /api/flashcards?moduleId=
func (db *DBHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := db.WithContext(r.Context()).
		Joins("JOIN modules ON modules.id = flashcards.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ?", userID)
	if moduleID := r.URL.Query().Get("moduleId"); moduleID != "" {
		q = q.Where("flashcards.module_id = ?", moduleID)
	}

	var cards []models.Flashcard
	if err := preloadModuleSummary(q).Order("flashcards.created_at DESC").Find(&cards).Error; err != nil {
		fail(w, r, "ListFlashcards", access.KindFlashcard, err)
		return
	}

	items := make([]flashcardItem, len(cards))
	for i, c := range cards {
		items[i] = withModule(c)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"flashcards": items,
		"total":      len(items),
	})
}

// GET /api/flashcards/{id}
func (db *DBHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindFlashcard, cardID, userID); err != nil {
		fail(w, r, "GetFlashcard", access.KindFlashcard, err)
		return
	}

	var card models.Flashcard
	if err := preloadModuleSummary(db.WithContext(r.Context())).Where("id = ?", cardID).First(&card).Error; err != nil {
		fail(w, r, "GetFlashcard", access.KindFlashcard, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, withModule(card))
}

// POST /api/flashcards
func (db *DBHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req validation.CreateFlashcardRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "CreateFlashcard", access.KindFlashcard, err)
		return
	}

	if err := db.Access.AuthorizeParent(r.Context(), access.KindModule, req.ModuleID, userID); err != nil {
		if errors.Is(err, access.ErrForbidden) {
			parentDenied(w, access.KindModule)
			return
		}
		fail(w, r, "CreateFlashcard", access.KindFlashcard, err)
		return
	}

	card := models.Flashcard{
		ModuleID: req.ModuleID,
		Question: req.Question,
		Answer:   req.Answer,
	}
	if req.Difficulty != nil {
		card.Difficulty = models.Difficulty(*req.Difficulty)
	}

	if err := db.WithContext(r.Context()).Create(&card).Error; err != nil {
		fail(w, r, "CreateFlashcard", access.KindFlashcard, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, card)
}

// PUT /api/flashcards/{id}
func (db *DBHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindFlashcard, cardID, userID); err != nil {
		fail(w, r, "UpdateFlashcard", access.KindFlashcard, err)
		return
	}

	var req validation.UpdateFlashcardRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "UpdateFlashcard", access.KindFlashcard, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Question != nil {
		updates["question"] = *req.Question
	}
	if req.Answer != nil {
		updates["answer"] = *req.Answer
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}

	card, err := db.updateFlashcard(r, cardID, updates)
	if err != nil {
		fail(w, r, "UpdateFlashcard", access.KindFlashcard, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

// POST /api/flashcards/{id}/review
func (db *DBHandler) ReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindFlashcard, cardID, userID); err != nil {
		fail(w, r, "ReviewFlashcard", access.KindFlashcard, err)
		return
	}

	card, err := db.updateFlashcard(r, cardID, map[string]interface{}{
		"review_count":  gorm.Expr("review_count + 1"),
		"last_reviewed": time.Now(),
	})
	if err != nil {
		fail(w, r, "ReviewFlashcard", access.KindFlashcard, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

func (db *DBHandler) updateFlashcard(r *http.Request, cardID string, updates map[string]interface{}) (*models.Flashcard, error) {
	var card models.Flashcard
	err := db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Flashcard{}).Where("id = ?", cardID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", cardID).First(&card).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// DELETE /api/flashcards/{id}
func (db *DBHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindFlashcard, cardID, userID); err != nil {
		fail(w, r, "DeleteFlashcard", access.KindFlashcard, err)
		return
	}

	if err := db.WithContext(r.Context()).Where("id = ?", cardID).Delete(&models.Flashcard{}).Error; err != nil {
		fail(w, r, "DeleteFlashcard", access.KindFlashcard, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Flashcard deleted successfully",
		"id":      cardID,
	})
}
