package httpapi

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const sessionIDKey ctxKey = "sessionID"

// SessionID returns the authenticated subject stored by the bearer
// middleware.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// bearerMiddleware verifies the Authorization bearer token and stores its
// subject in the request context. A missing or empty token is a malformed
// request; a token that fails verification is access denied. Both answer 403.
func (s *Server) bearerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusForbidden, CodeInvalidBody, "invalid request body")
			return
		}

		subject, err := s.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusForbidden, CodeAccessDenied, "access denied")
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
