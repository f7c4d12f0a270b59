// Package prefs manages the client-side display state the backend
// knows nothing about: per-wallet icon choice and restorable screen
// view state. It is a thin validation layer over a key-value cache
// and must never be depended on by the reconciliation core.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/carteira-app/carteira/internal/screen"
	"github.com/carteira-app/carteira/pkg/logger"
)

// Service validates and persists display preferences
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new preferences service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log.WithField("component", "prefs"),
	}
}

// WalletIcon returns the saved icon for a wallet, or DefaultIcon
func (s *Service) WalletIcon(ctx context.Context, accountID, walletID string) (string, error) {
	icon, err := s.store.GetIcon(ctx, accountID, walletID)
	if errors.Is(err, ErrNotFound) {
		return DefaultIcon, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get wallet icon: %w", err)
	}
	if !IsValidIcon(icon) {
		// A stale preference from an older picker set; fall back
		s.logger.Warn("stored icon no longer valid", "wallet_id", walletID, "icon", icon)
		return DefaultIcon, nil
	}
	return icon, nil
}

// SetWalletIcon saves an icon choice, rejecting tags outside the picker set
func (s *Service) SetWalletIcon(ctx context.Context, accountID, walletID, icon string) error {
	if !IsValidIcon(icon) {
		return fmt.Errorf("%w: %q", ErrInvalidIcon, icon)
	}
	if err := s.store.SetIcon(ctx, accountID, walletID, icon); err != nil {
		return fmt.Errorf("failed to set wallet icon: %w", err)
	}
	return nil
}

// WalletScreenState returns the saved wallet screen state, or the default
func (s *Service) WalletScreenState(ctx context.Context, accountID, walletID string) (screen.WalletState, error) {
	state, err := s.store.GetWalletState(ctx, accountID, walletID)
	if errors.Is(err, ErrNotFound) {
		return screen.DefaultWalletState(walletID), nil
	}
	if err != nil {
		return screen.WalletState{}, fmt.Errorf("failed to get wallet screen state: %w", err)
	}
	if state.Validate() != nil {
		return screen.DefaultWalletState(walletID), nil
	}
	return state, nil
}

// SetWalletScreenState saves a wallet screen state, failing closed on
// states the UI could not have produced
func (s *Service) SetWalletScreenState(ctx context.Context, accountID string, state screen.WalletState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if err := s.store.SetWalletState(ctx, accountID, state); err != nil {
		return fmt.Errorf("failed to set wallet screen state: %w", err)
	}
	return nil
}

// ExtractScreenState returns the saved extract screen state, or a default
func (s *Service) ExtractScreenState(ctx context.Context, accountID string) (screen.ExtractState, error) {
	state, err := s.store.GetExtractState(ctx, accountID)
	if errors.Is(err, ErrNotFound) {
		return screen.ExtractState{ShowBalance: true}, nil
	}
	if err != nil {
		return screen.ExtractState{}, fmt.Errorf("failed to get extract screen state: %w", err)
	}
	return state, nil
}

// SetExtractScreenState saves the extract screen state
func (s *Service) SetExtractScreenState(ctx context.Context, accountID string, state screen.ExtractState) error {
	if err := s.store.SetExtractState(ctx, accountID, state); err != nil {
		return fmt.Errorf("failed to set extract screen state: %w", err)
	}
	return nil
}
