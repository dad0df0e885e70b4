package handlers

import (
	"net/http"

	"github.com/andrewpaige1/learning-tracker/middleware"
)

// Routes registers every API endpoint on mux. authLimit wraps the
// credential endpoints and may be nil.
func (db *DBHandler) Routes(mux *http.ServeMux, authLimit func(http.Handler) http.Handler) {
	limited := func(h http.HandlerFunc) http.Handler {
		if authLimit == nil {
			return h
		}
		return authLimit(h)
	}
	protected := middleware.RequireUser

	mux.HandleFunc("GET /healthz", db.Healthz)

	// Auth
	mux.Handle("POST /api/auth/register", limited(db.Register))
	mux.Handle("POST /api/auth/login", limited(db.Login))
	mux.HandleFunc("POST /api/auth/logout", db.Logout)
	mux.HandleFunc("GET /api/auth/session", protected(db.Session))
	mux.HandleFunc("GET /api/auth/google", db.GoogleLogin)
	mux.HandleFunc("GET /api/auth/google/callback", db.GoogleCallback)

	// Courses
	mux.HandleFunc("GET /api/courses", protected(db.ListCourses))
	mux.HandleFunc("POST /api/courses", protected(db.CreateCourse))
	mux.HandleFunc("GET /api/courses/{id}", protected(db.GetCourse))
	mux.HandleFunc("PUT /api/courses/{id}", protected(db.UpdateCourse))
	mux.HandleFunc("DELETE /api/courses/{id}", protected(db.DeleteCourse))

	// Modules
	mux.HandleFunc("GET /api/modules", protected(db.ListModules))
	mux.HandleFunc("POST /api/modules", protected(db.CreateModule))
	mux.HandleFunc("GET /api/modules/{id}", protected(db.GetModule))
	mux.HandleFunc("PUT /api/modules/{id}", protected(db.UpdateModule))
	mux.HandleFunc("DELETE /api/modules/{id}", protected(db.DeleteModule))

	// Flashcards
	mux.HandleFunc("GET /api/flashcards", protected(db.ListFlashcards))
	mux.HandleFunc("POST /api/flashcards", protected(db.CreateFlashcard))
	mux.HandleFunc("GET /api/flashcards/{id}", protected(db.GetFlashcard))
	mux.HandleFunc("PUT /api/flashcards/{id}", protected(db.UpdateFlashcard))
	mux.HandleFunc("DELETE /api/flashcards/{id}", protected(db.DeleteFlashcard))
	mux.HandleFunc("POST /api/flashcards/{id}/review", protected(db.ReviewFlashcard))

	mux.HandleFunc("POST /api/ai/generate-flashcards", protected(db.GenerateFlashcards))
	mux.HandleFunc("GET /api/analytics", protected(db.GetAnalytics))
}
