package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/ai"
	"github.com/andrewpaige1/learning-tracker/auth"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/andrewpaige1/learning-tracker/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxBodyBytes = 1 << 20

type DBHandler struct {
	*gorm.DB
	Access    *access.Resolver
	Auth      *auth.Service
	Sessions  *auth.Sessions
	Generator ai.Generator

	// Nil unless Google sign-in is configured
	Google *auth.Google
}

func NewDBHandler(db *gorm.DB, sessions *auth.Sessions, generator ai.Generator) *DBHandler {
	return &DBHandler{
		DB:        db,
		Access:    access.NewResolver(db),
		Auth:      auth.NewService(db),
		Sessions:  sessions,
		Generator: generator,
	}
}

// decode reads and validates a JSON request body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return validation.Errors{{Field: "body", Message: "request body is too large or unreadable"}}
	}
	return validation.Decode(body, dst)
}

// fail maps err to a response. Unknown errors are logged and hidden.
func fail(w http.ResponseWriter, r *http.Request, handler string, kind access.Kind, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		utils.WriteError(w, utils.ErrValidation.WithDetails(verrs))
	case errors.Is(err, access.ErrNotFound):
		utils.WriteError(w, utils.ErrNotFound.WithMessage(fmt.Sprintf("%s not found", kind)))
	case errors.Is(err, access.ErrForbidden):
		utils.WriteError(w, utils.ErrForbidden)
	default:
		log.Error().Err(err).Str("handler", handler).Str("path", r.URL.Path).Msg("request failed")
		utils.WriteError(w, utils.ErrInternal)
	}
}

// parentDenied is the 403 sent when creating under a missing or foreign parent.
func parentDenied(w http.ResponseWriter, kind access.Kind) {
	utils.WriteError(w, utils.ErrForbidden.WithMessage(fmt.Sprintf("%s not found or access denied", kind)))
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, utils.ErrUnauthorized)
	}
	return userID, ok
}

type moduleCounts struct {
	Flashcards    int64 `json:"flashcards"`
	StudySessions int64 `json:"studySessions"`
}

// countByModule returns flashcard and study session counts keyed by module id.
func countByModule(ctx context.Context, db *gorm.DB, moduleIDs []string) (map[string]*moduleCounts, error) {
	counts := make(map[string]*moduleCounts, len(moduleIDs))
	for _, id := range moduleIDs {
		counts[id] = &moduleCounts{}
	}
	if len(moduleIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ModuleID string
		N        int64
	}

	var cardRows []row
	if err := db.WithContext(ctx).Model(&models.Flashcard{}).
		Select("module_id, COUNT(*) AS n").
		Where("module_id IN ?", moduleIDs).
		Group("module_id").
		Scan(&cardRows).Error; err != nil {
		return nil, fmt.Errorf("count flashcards: %w", err)
	}
	for _, rw := range cardRows {
		counts[rw.ModuleID].Flashcards = rw.N
	}

	var sessionRows []row
	if err := db.WithContext(ctx).Model(&models.StudySession{}).
		Select("module_id, COUNT(*) AS n").
		Where("module_id IN ?", moduleIDs).
		Group("module_id").
		Scan(&sessionRows).Error; err != nil {
		return nil, fmt.Errorf("count study sessions: %w", err)
	}
	for _, rw := range sessionRows {
		counts[rw.ModuleID].StudySessions = rw.N
	}
	return counts, nil
}
