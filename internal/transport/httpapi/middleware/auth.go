package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira/internal/platform/session"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// SessionIDKey is the context key for the session ID
	SessionIDKey ContextKey = "session_id"
	// AccountIDKey is the context key for the account ID
	AccountIDKey ContextKey = "account_id"
	// BackendTokenKey is the context key for the backend bearer token
	BackendTokenKey ContextKey = "backend_token"
)

// SessionResolver resolves a session ID to an active session. The
// backend token inside the session is what downstream calls use; this
// service never verifies the token itself.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID uuid.UUID) (session.Session, error)
}

// Auth creates a middleware that resolves the Bearer session ID and
// injects the account ID and backend token into the request context
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			sessionID, err := uuid.Parse(parts[1])
			if err != nil {
				http.Error(w, "invalid session", http.StatusUnauthorized)
				return
			}

			sess, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, session.ErrExpired) {
					http.Error(w, "session expired", http.StatusUnauthorized)
					return
				}
				http.Error(w, "invalid session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sess.ID.String())
			ctx = context.WithValue(ctx, AccountIDKey, sess.AccountID)
			ctx = context.WithValue(ctx, BackendTokenKey, sess.Token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountIDFromContext extracts the account ID from the request context
func GetAccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(string)
	return accountID, ok
}

// GetBackendTokenFromContext extracts the backend token from the request context
func GetBackendTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(BackendTokenKey).(string)
	return token, ok
}

// GetSessionIDFromContext extracts the session ID from the request context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}
