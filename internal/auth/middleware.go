package auth

import (
	"context"
	"net/http"
	"strings"
)

// The caller's user ID rides in the request context under an unexported key
// type so other packages cannot collide with it.
type contextKey struct{}

var userIDKey contextKey

// AuthMiddleware guards the project API: it validates the bearer token and
// stashes the caller's user ID for handlers downstream. Websocket upgrades
// authenticate separately since browsers cannot set headers on them.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		userID, err := s.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user ID, or empty when the
// request never passed through AuthMiddleware.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
