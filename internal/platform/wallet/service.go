package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/ledger"
	"github.com/carteira-app/carteira/internal/refresh"
	"github.com/carteira-app/carteira/pkg/logger"
	"github.com/carteira-app/carteira/pkg/money"
)

// Service provides the wallet screen operations. The backend exposes
// balance and transaction history on separate endpoints, so every
// Detail call runs under a refresh ticket: if a newer refresh begins
// before both fetches land, the stale pairing is discarded instead of
// being reconciled into a wrong opening balance.
type Service struct {
	gateway Gateway
	icons   IconSource
	logger  *logger.Logger

	mu     sync.Mutex
	guards map[string]*refresh.Guard // per wallet ID
}

// NewService creates a new wallet screen service
func NewService(gateway Gateway, icons IconSource, log *logger.Logger) *Service {
	return &Service{
		gateway: gateway,
		icons:   icons,
		logger:  log.WithField("component", "wallet"),
		guards:  make(map[string]*refresh.Guard),
	}
}

func (s *Service) guard(walletID string) *refresh.Guard {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[walletID]
	if !ok {
		g = &refresh.Guard{}
		s.guards[walletID] = g
	}
	return g
}

// List returns all wallets of the account
func (s *Service) List(ctx context.Context, token string) ([]Wallet, error) {
	gws, err := s.gateway.ListWallets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	wallets := make([]Wallet, 0, len(gws))
	for _, gw := range gws {
		wallets = append(wallets, fromGateway(gw))
	}
	return wallets, nil
}

// Detail fetches the wallet and its history in one refresh cycle and
// derives the opening balance, goal progress, and icon.
func (s *Service) Detail(ctx context.Context, token, accountID, walletID string) (Detail, error) {
	ticket := s.guard(walletID).Begin()

	gw, err := s.gateway.GetWallet(ctx, token, walletID)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to fetch wallet: %w", err)
	}

	txs, err := s.gateway.WalletTransactions(ctx, token, walletID)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to fetch wallet transactions: %w", err)
	}

	// Balance and transactions must come from the same cycle. If a
	// newer refresh started meanwhile, this pairing may mix snapshots
	// taken at different times; drop it.
	if !s.guard(walletID).Still(ticket) {
		s.logger.Debug("stale wallet refresh discarded", "wallet_id", walletID)
		return Detail{}, ErrStaleRefresh
	}

	opening, err := ledger.OpeningBalance(gw.Balance, txs)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to reconcile wallet %s: %w", walletID, err)
	}

	icon, err := s.icons.WalletIcon(ctx, accountID, walletID)
	if err != nil {
		// Icon is pure decoration; a cache failure must not take the
		// screen down
		s.logger.Warn("failed to load wallet icon", "wallet_id", walletID, "error", err)
		icon = ""
	}

	w := fromGateway(gw)
	return Detail{
		Wallet:         w,
		Icon:           icon,
		OpeningBalance: opening,
		GoalProgress:   goalProgress(w.Balance, w.Goal),
		Transactions:   txs,
	}, nil
}

// Create creates a wallet after validating its fields client-side
func (s *Service) Create(ctx context.Context, token, name string, goal, initialDeposit decimal.Decimal) (Wallet, error) {
	if err := validateName(name); err != nil {
		return Wallet{}, err
	}
	if goal.Sign() < 0 {
		return Wallet{}, ErrNegativeGoal
	}
	if _, err := money.Validate(initialDeposit); err != nil {
		return Wallet{}, err
	}

	gw, err := s.gateway.CreateWallet(ctx, token, bankapi.CreateWalletRequest{
		Name:           name,
		Goal:           goal,
		InitialDeposit: initialDeposit,
	})
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to create wallet: %w", err)
	}
	return fromGateway(gw), nil
}

// Update edits a wallet's name and goal
func (s *Service) Update(ctx context.Context, token, walletID, name string, goal decimal.Decimal) (Wallet, error) {
	if err := validateName(name); err != nil {
		return Wallet{}, err
	}
	if goal.Sign() < 0 {
		return Wallet{}, ErrNegativeGoal
	}

	gw, err := s.gateway.UpdateWallet(ctx, token, walletID, bankapi.UpdateWalletRequest{
		Name: name,
		Goal: goal,
	})
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to update wallet: %w", err)
	}
	return fromGateway(gw), nil
}

// Delete closes a wallet, returning its balance to the main account.
// The wallet's refresh guard is dropped with it so the map does not
// accumulate entries for wallets that no longer exist.
func (s *Service) Delete(ctx context.Context, token, walletID string) error {
	if err := s.gateway.DeleteWallet(ctx, token, walletID); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	s.mu.Lock()
	delete(s.guards, walletID)
	s.mu.Unlock()
	return nil
}

// Deposit moves amount into the wallet and returns the updated view.
// The expected post-movement balance is derived locally and checked
// against the backend's answer; disagreement is logged, the backend
// value wins.
func (s *Service) Deposit(ctx context.Context, token, walletID string, amount decimal.Decimal) (Wallet, error) {
	return s.movement(ctx, token, walletID, amount, ledger.KindDeposit)
}

// Withdraw moves amount from the wallet back to the main account
func (s *Service) Withdraw(ctx context.Context, token, walletID string, amount decimal.Decimal) (Wallet, error) {
	return s.movement(ctx, token, walletID, amount, ledger.KindWithdrawal)
}

func (s *Service) movement(ctx context.Context, token, walletID string, amount decimal.Decimal, kind ledger.TxKind) (Wallet, error) {
	if _, err := money.Validate(amount); err != nil {
		return Wallet{}, err
	}
	if amount.Sign() == 0 {
		return Wallet{}, ErrNonPositiveAmount
	}

	before, err := s.gateway.GetWallet(ctx, token, walletID)
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to fetch wallet: %w", err)
	}

	expected, err := ledger.CurrentBalance(before.Balance, []ledger.WalletTransaction{
		{Kind: kind, Amount: amount},
	})
	if err != nil {
		return Wallet{}, err
	}

	var after bankapi.Wallet
	switch kind {
	case ledger.KindDeposit:
		after, err = s.gateway.WalletDeposit(ctx, token, walletID, amount)
	default:
		after, err = s.gateway.WalletWithdraw(ctx, token, walletID, amount)
	}
	if err != nil {
		return Wallet{}, fmt.Errorf("wallet movement failed: %w", err)
	}

	if !after.Balance.Equal(expected) {
		// Another movement raced this one on the backend side
		s.logger.Warn("wallet balance diverged from local projection",
			"wallet_id", walletID,
			"expected", expected.String(),
			"actual", after.Balance.String())
	}

	return fromGateway(after), nil
}

func validateName(name string) error {
	if name == "" {
		return ErrMissingWalletName
	}
	if len(name) > 100 {
		return ErrWalletNameTooLong
	}
	return nil
}
