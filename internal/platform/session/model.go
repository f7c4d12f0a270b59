package session

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque client-facing session ID to the JWT the
// backend issued at login. The front-end only ever sees the ID; the
// token stays server-side in the cache.
type Session struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its backend token expiry
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
