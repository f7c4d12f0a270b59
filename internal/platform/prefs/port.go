package prefs

import (
	"context"

	"github.com/carteira-app/carteira/internal/screen"
)

// Store is the key-value cache for per-account display preferences.
// Implementations return ErrNotFound for keys never written (callers
// fall back to defaults; a miss is not a failure).
type Store interface {
	GetIcon(ctx context.Context, accountID, walletID string) (string, error)
	SetIcon(ctx context.Context, accountID, walletID, icon string) error

	GetWalletState(ctx context.Context, accountID, walletID string) (screen.WalletState, error)
	SetWalletState(ctx context.Context, accountID string, state screen.WalletState) error

	GetExtractState(ctx context.Context, accountID string) (screen.ExtractState, error)
	SetExtractState(ctx context.Context, accountID string, state screen.ExtractState) error
}
