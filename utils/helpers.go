package utils

import (
	"context"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID returns a copy of ctx carrying the signed-in user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the id set by the session middleware.
func GetUserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey).(string)
	return id, ok && id != ""
}

// GetAuth0Claims returns validated Auth0 claims when a bearer token was sent.
func GetAuth0Claims(r *http.Request) (*validator.ValidatedClaims, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims == nil || claims.RegisteredClaims.Subject == "" {
		return nil, false
	}
	return claims, true
}
