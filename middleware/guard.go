package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/andrewpaige1/learning-tracker/auth"
)

// DashboardGuard redirects unauthenticated requests for /dashboard pages to
// /login with the original path as callbackUrl.
func DashboardGuard(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isDashboardPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if _, err := sessions.FromRequest(r); err != nil {
				target := "/login?callbackUrl=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isDashboardPath(path string) bool {
	return path == "/dashboard" || strings.HasPrefix(path, "/dashboard/")
}
