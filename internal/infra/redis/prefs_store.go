package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/carteira-app/carteira/internal/platform/prefs"
	"github.com/carteira-app/carteira/internal/screen"
	"github.com/carteira-app/carteira/pkg/logger"
)

// PrefsKeyPrefix is the prefix for display preference keys
const PrefsKeyPrefix = "prefs:"

// PrefsStore is a Redis-backed prefs.Store. Entries carry no TTL:
// display preferences outlive sessions, like their local-storage
// counterpart.
type PrefsStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewPrefsStore creates a new preferences store
func NewPrefsStore(client *redis.Client, log *logger.Logger) *PrefsStore {
	return &PrefsStore{
		client: client,
		logger: log.WithField("component", "prefs_store"),
	}
}

func iconKey(accountID, walletID string) string {
	return fmt.Sprintf("%s%s:wallet:%s:icon", PrefsKeyPrefix, accountID, walletID)
}

func walletStateKey(accountID, walletID string) string {
	return fmt.Sprintf("%s%s:screen:wallet:%s", PrefsKeyPrefix, accountID, walletID)
}

func extractStateKey(accountID string) string {
	return fmt.Sprintf("%s%s:screen:extract", PrefsKeyPrefix, accountID)
}

// GetIcon retrieves the saved icon tag for a wallet
func (s *PrefsStore) GetIcon(ctx context.Context, accountID, walletID string) (string, error) {
	val, err := s.client.Get(ctx, iconKey(accountID, walletID)).Result()
	if err == redis.Nil {
		return "", prefs.ErrNotFound
	}
	if err != nil {
		s.logger.Error("cache error", "operation", "get_icon", "wallet_id", walletID, "error", err)
		return "", fmt.Errorf("failed to get icon: %w", err)
	}
	return val, nil
}

// SetIcon saves the icon tag for a wallet
func (s *PrefsStore) SetIcon(ctx context.Context, accountID, walletID, icon string) error {
	if err := s.client.Set(ctx, iconKey(accountID, walletID), icon, 0).Err(); err != nil {
		s.logger.Error("cache error", "operation", "set_icon", "wallet_id", walletID, "error", err)
		return fmt.Errorf("failed to set icon: %w", err)
	}
	return nil
}

// GetWalletState retrieves the saved wallet screen state
func (s *PrefsStore) GetWalletState(ctx context.Context, accountID, walletID string) (screen.WalletState, error) {
	val, err := s.client.Get(ctx, walletStateKey(accountID, walletID)).Result()
	if err == redis.Nil {
		return screen.WalletState{}, prefs.ErrNotFound
	}
	if err != nil {
		return screen.WalletState{}, fmt.Errorf("failed to get wallet state: %w", err)
	}

	var state screen.WalletState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return screen.WalletState{}, fmt.Errorf("failed to unmarshal wallet state: %w", err)
	}
	return state, nil
}

// SetWalletState saves a wallet screen state
func (s *PrefsStore) SetWalletState(ctx context.Context, accountID string, state screen.WalletState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet state: %w", err)
	}
	if err := s.client.Set(ctx, walletStateKey(accountID, state.WalletID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set wallet state: %w", err)
	}
	return nil
}

// GetExtractState retrieves the saved extract screen state
func (s *PrefsStore) GetExtractState(ctx context.Context, accountID string) (screen.ExtractState, error) {
	val, err := s.client.Get(ctx, extractStateKey(accountID)).Result()
	if err == redis.Nil {
		return screen.ExtractState{}, prefs.ErrNotFound
	}
	if err != nil {
		return screen.ExtractState{}, fmt.Errorf("failed to get extract state: %w", err)
	}

	var state screen.ExtractState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return screen.ExtractState{}, fmt.Errorf("failed to unmarshal extract state: %w", err)
	}
	return state, nil
}

// SetExtractState saves the extract screen state
func (s *PrefsStore) SetExtractState(ctx context.Context, accountID string, state screen.ExtractState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal extract state: %w", err)
	}
	if err := s.client.Set(ctx, extractStateKey(accountID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set extract state: %w", err)
	}
	return nil
}
