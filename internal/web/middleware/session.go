package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wareroom/stockview/internal/logging"
	"github.com/wareroom/stockview/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionFrom returns the authenticated session stored by RequireSession,
// or nil outside an authenticated request.
func SessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// RequireSession resolves the access-token cookie into a session and stores
// it in the request context. Requests without a valid session never reach
// the wrapped handler: browsers are redirected to the login page, API
// clients get a 401. A provider outage is reported as 503, not as a missing
// session.
func RequireSession(provider session.Provider, cookieName, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())

			var token string
			if cookie, err := r.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			sess, err := provider.Current(r.Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrUnauthenticated) {
					logger.Info("unauthenticated request", "path", r.URL.Path)
					unauthenticated(w, r, loginPath)
					return
				}
				logger.Error("session lookup failed", "path", r.URL.Path, "error", err)
				if wantsJSON(r) {
					http.Error(w, `{"error":"session lookup failed","code":"AUTH002"}`, http.StatusServiceUnavailable)
					return
				}
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter, r *http.Request, loginPath string) {
	if wantsJSON(r) {
		http.Error(w, `{"error":"please log in","code":"AUTH001"}`, http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, loginPath, http.StatusFound)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
