package middleware

import (
	"net/http"

	"github.com/andrewpaige1/learning-tracker/auth"
	"github.com/andrewpaige1/learning-tracker/utils"
)

// Authenticate puts the session cookie's user id into the request context.
// Requests without a valid cookie pass through untouched.
func Authenticate(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserID(r); ok {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := sessions.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), claims.Subject)))
		})
	}
}

// RequireUser answers 401 unless a user id is in the request context.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserID(r); !ok {
			utils.WriteError(w, utils.ErrUnauthorized)
			return
		}
		next(w, r)
	}
}
