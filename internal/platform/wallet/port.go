package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/ledger"
)

// Gateway is the slice of the core-banking client the wallet screens use
type Gateway interface {
	ListWallets(ctx context.Context, token string) ([]bankapi.Wallet, error)
	GetWallet(ctx context.Context, token, walletID string) (bankapi.Wallet, error)
	CreateWallet(ctx context.Context, token string, req bankapi.CreateWalletRequest) (bankapi.Wallet, error)
	UpdateWallet(ctx context.Context, token, walletID string, req bankapi.UpdateWalletRequest) (bankapi.Wallet, error)
	DeleteWallet(ctx context.Context, token, walletID string) error
	WalletTransactions(ctx context.Context, token, walletID string) ([]ledger.WalletTransaction, error)
	WalletDeposit(ctx context.Context, token, walletID string, amount decimal.Decimal) (bankapi.Wallet, error)
	WalletWithdraw(ctx context.Context, token, walletID string, amount decimal.Decimal) (bankapi.Wallet, error)
}

// IconSource resolves the saved icon preference for a wallet
type IconSource interface {
	WalletIcon(ctx context.Context, accountID, walletID string) (string, error)
}
