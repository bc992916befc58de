package auth

import (
	"net/http"
	"time"

	"github.com/indoha-commits/cargo-portal/internal/shared"
)

// RedirectToLogin sends the browser to the login portal after dropping any
// stale session state. Handlers call it exactly once per failed request.
func RedirectToLogin(w http.ResponseWriter, r *http.Request, sessions *shared.SessionManager, loginURL string) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		sessions.Destroy(sess)
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// RequireSession guards authenticated routes. A request without a stored
// access token, or with one whose exp claim has passed, is redirected to
// the login portal before any backend call is attempted.
func RequireSession(sessions *shared.SessionManager, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || sess.AccessToken() == "" || TokenExpired(sess.AccessToken(), time.Now()) {
				RedirectToLogin(w, r, sessions, loginURL)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
