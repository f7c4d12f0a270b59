// Package redis implements the key-value stores backing session and
// display-preference caching. It is the server-side counterpart of the
// browser's local storage: everything here is reconstructible, TTL'd,
// and safe to lose.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carteira-app/carteira/internal/platform/session"
	"github.com/carteira-app/carteira/pkg/logger"
)

// SessionKeyPrefix is the prefix for session cache keys
const SessionKeyPrefix = "session:"

// SessionStore is a Redis-backed session.Store
type SessionStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewSessionStore creates a new session store
func NewSessionStore(client *redis.Client, log *logger.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		logger: log.WithField("component", "session_store"),
	}
}

func sessionKey(id uuid.UUID) string {
	return SessionKeyPrefix + id.String()
}

// Get retrieves a cached session by ID
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		s.logger.Debug("session miss", "session_id", id)
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		s.logger.Error("cache error", "operation", "get", "session_id", id, "error", err)
		return session.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sess, nil
}

// Set stores a session with the given TTL
func (s *SessionStore) Set(ctx context.Context, sess session.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err(); err != nil {
		s.logger.Error("cache error", "operation", "set", "session_id", sess.ID, "error", err)
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Delete removes a cached session. Missing keys are not an error.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
