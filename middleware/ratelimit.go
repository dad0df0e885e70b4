package middleware

import (
	"net/http"
	"time"

	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/go-chi/httprate"
)

// RateLimitByIP allows limit requests per window from each client IP.
func RateLimitByIP(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.WriteError(w, utils.ErrRateLimited)
		}),
	)
}
