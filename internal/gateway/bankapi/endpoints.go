package bankapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/ledger"
	"github.com/carteira-app/carteira/pkg/money"
)

// Login authenticates against the backend and returns the session it issued
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Session{}, fmt.Errorf("Login failed: %w", err)
	}

	var dto sessionDTO
	if err := decode(body, &dto); err != nil {
		return Session{}, err
	}
	return dto.toSession()
}

// Signup registers a new account and returns the session it issued
func (c *Client) Signup(ctx context.Context, name, email, password string) (Session, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", "", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Session{}, fmt.Errorf("Signup failed: %w", err)
	}

	var dto sessionDTO
	if err := decode(body, &dto); err != nil {
		return Session{}, err
	}
	return dto.toSession()
}

// AccountBalance fetches the main account balance
func (c *Client) AccountBalance(ctx context.Context, token, accountID string) (decimal.Decimal, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/accounts/"+accountID+"/balance", token, nil, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("AccountBalance failed: %w", err)
	}

	var dto balanceDTO
	if err := decode(body, &dto); err != nil {
		return decimal.Zero, err
	}

	balance, err := money.Parse(dto.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account balance: %w", err)
	}
	return balance, nil
}

// Statement fetches the account-level transaction history
func (c *Client) Statement(ctx context.Context, token, accountID string) ([]StatementEntry, error) {
	fetchStart := time.Now()
	body, err := c.doRequest(ctx, http.MethodGet, "/accounts/"+accountID+"/statement", token, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("Statement failed: %w", err)
	}

	var dtos []statementEntryDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}

	entries := make([]StatementEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := dto.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	c.logger.Info("statement fetched", "account_id", accountID, "count", len(entries), "duration_ms", time.Since(fetchStart).Milliseconds())
	return entries, nil
}

// ListWallets fetches all wallets of the authenticated account
func (c *Client) ListWallets(ctx context.Context, token string) ([]Wallet, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/wallets", token, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("ListWallets failed: %w", err)
	}

	var dtos []walletDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}

	wallets := make([]Wallet, 0, len(dtos))
	for _, dto := range dtos {
		w, err := dto.toWallet()
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, nil
}

// GetWallet fetches a single wallet
func (c *Client) GetWallet(ctx context.Context, token, walletID string) (Wallet, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/wallets/"+walletID, token, nil, nil)
	if err != nil {
		return Wallet{}, fmt.Errorf("GetWallet failed: %w", err)
	}

	var dto walletDTO
	if err := decode(body, &dto); err != nil {
		return Wallet{}, err
	}
	return dto.toWallet()
}

// CreateWalletRequest carries the fields for a new wallet
type CreateWalletRequest struct {
	Name           string          `json:"name"`
	Goal           decimal.Decimal `json:"goal"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// CreateWallet creates a new wallet on the backend
func (c *Client) CreateWallet(ctx context.Context, token string, req CreateWalletRequest) (Wallet, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/wallets", token, nil, map[string]string{
		"name":            req.Name,
		"goal":            req.Goal.StringFixed(money.Scale),
		"initial_deposit": req.InitialDeposit.StringFixed(money.Scale),
	})
	if err != nil {
		return Wallet{}, fmt.Errorf("CreateWallet failed: %w", err)
	}

	var dto walletDTO
	if err := decode(body, &dto); err != nil {
		return Wallet{}, err
	}
	return dto.toWallet()
}

// UpdateWalletRequest carries the editable wallet fields
type UpdateWalletRequest struct {
	Name string          `json:"name"`
	Goal decimal.Decimal `json:"goal"`
}

// UpdateWallet updates a wallet's name and goal
func (c *Client) UpdateWallet(ctx context.Context, token, walletID string, req UpdateWalletRequest) (Wallet, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/wallets/"+walletID, token, nil, map[string]string{
		"name": req.Name,
		"goal": req.Goal.StringFixed(money.Scale),
	})
	if err != nil {
		return Wallet{}, fmt.Errorf("UpdateWallet failed: %w", err)
	}

	var dto walletDTO
	if err := decode(body, &dto); err != nil {
		return Wallet{}, err
	}
	return dto.toWallet()
}

// DeleteWallet closes a wallet; its balance returns to the main account
func (c *Client) DeleteWallet(ctx context.Context, token, walletID string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/wallets/"+walletID, token, nil, nil); err != nil {
		return fmt.Errorf("DeleteWallet failed: %w", err)
	}
	return nil
}

// WalletTransactions fetches the deposit/withdrawal history of a wallet
func (c *Client) WalletTransactions(ctx context.Context, token, walletID string) ([]ledger.WalletTransaction, error) {
	fetchStart := time.Now()
	body, err := c.doRequest(ctx, http.MethodGet, "/wallets/"+walletID+"/transactions", token, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("WalletTransactions failed: %w", err)
	}

	var dtos []walletTxDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}

	txs := make([]ledger.WalletTransaction, 0, len(dtos))
	for _, dto := range dtos {
		tx, err := dto.toTransaction()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	c.logger.Info("wallet transactions fetched", "wallet_id", walletID, "count", len(txs), "duration_ms", time.Since(fetchStart).Milliseconds())
	return txs, nil
}

// WalletDeposit moves amount from the main account into the wallet
func (c *Client) WalletDeposit(ctx context.Context, token, walletID string, amount decimal.Decimal) (Wallet, error) {
	return c.walletMovement(ctx, token, walletID, "/deposits", amount)
}

// WalletWithdraw moves amount from the wallet back to the main account
func (c *Client) WalletWithdraw(ctx context.Context, token, walletID string, amount decimal.Decimal) (Wallet, error) {
	return c.walletMovement(ctx, token, walletID, "/withdrawals", amount)
}

func (c *Client) walletMovement(ctx context.Context, token, walletID, suffix string, amount decimal.Decimal) (Wallet, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/wallets/"+walletID+suffix, token, nil, map[string]string{
		"amount": amount.StringFixed(money.Scale),
	})
	if err != nil {
		return Wallet{}, fmt.Errorf("wallet movement failed: %w", err)
	}

	var dto walletDTO
	if err := decode(body, &dto); err != nil {
		return Wallet{}, err
	}
	return dto.toWallet()
}
