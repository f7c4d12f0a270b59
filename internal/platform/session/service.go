package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carteira-app/carteira/pkg/logger"
)

// Service proxies login/signup to the backend and caches the issued
// token under an opaque session ID. Verification of the token is the
// backend's job; this side only reads the exp claim to size the TTL.
type Service struct {
	gateway     AuthGateway
	store       Store
	fallbackTTL time.Duration
	logger      *logger.Logger
	now         func() time.Time
}

// NewService creates a new session service. fallbackTTL bounds sessions
// whose token carries no exp claim.
func NewService(gateway AuthGateway, store Store, fallbackTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		gateway:     gateway,
		store:       store,
		fallbackTTL: fallbackTTL,
		logger:      log.WithField("component", "session"),
		now:         time.Now,
	}
}

// Login authenticates against the backend and opens a cached session
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	backendSession, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("backend login: %w", err)
	}
	return s.open(ctx, backendSession.AccountID, backendSession.Token)
}

// Signup registers a new account on the backend and opens a session
func (s *Service) Signup(ctx context.Context, name, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	backendSession, err := s.gateway.Signup(ctx, name, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("backend signup: %w", err)
	}
	return s.open(ctx, backendSession.AccountID, backendSession.Token)
}

// Resolve looks up a live session by its opaque ID
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		// TTL and exp should agree, but the store is not authoritative
		_ = s.store.Delete(ctx, id)
		return Session{}, ErrExpired
	}
	return sess, nil
}

// Logout drops the cached session. Idempotent.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("session closed", "session_id", id)
	return nil
}

func (s *Service) open(ctx context.Context, accountID, token string) (Session, error) {
	now := s.now()
	ttl := s.fallbackTTL
	expiresAt := now.Add(ttl)

	if exp, ok := tokenExpiry(token); ok && exp.After(now) {
		ttl = exp.Sub(now)
		expiresAt = exp
	}

	sess := Session{
		ID:        uuid.New(),
		AccountID: accountID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := s.store.Set(ctx, sess, ttl); err != nil {
		return Session{}, fmt.Errorf("failed to cache session: %w", err)
	}

	s.logger.Info("session opened", "session_id", sess.ID, "account_id", accountID, "ttl_s", int(ttl.Seconds()))
	return sess, nil
}

// tokenExpiry extracts the exp claim without verifying the signature;
// the backend owns verification, this side only needs the deadline.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
