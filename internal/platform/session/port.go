package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
)

// Store is the key-value cache holding live sessions. Implementations
// must return ErrNotFound for unknown or evicted IDs.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	Set(ctx context.Context, s Session, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthGateway is the slice of the core-banking client the session
// service needs.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (bankapi.Session, error)
	Signup(ctx context.Context, name, email, password string) (bankapi.Session, error)
}
