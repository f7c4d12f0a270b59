package bankapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/ledger"
	"github.com/carteira-app/carteira/pkg/money"
)

// WalletState is the lifecycle state of a wallet on the backend
type WalletState string

const (
	WalletActive WalletState = "ATIVA"
	WalletClosed WalletState = "ENCERRADA"
)

// Session is the result of a successful login or signup
type Session struct {
	AccountID string
	Token     string // backend-issued JWT
}

// Wallet is a wallet (sub-account) as reported by the backend.
// Balance and Goal are exact decimals; Goal is zero when unset.
type Wallet struct {
	ID      string
	Name    string
	Balance decimal.Decimal
	Goal    decimal.Decimal
	State   WalletState
}

// StatementEntry is one row of the account-level extract. Type is a
// raw backend code; classification happens in the extract module.
type StatementEntry struct {
	ID     string
	Date   time.Time
	Type   string
	Amount decimal.Decimal
}

// sessionDTO is the wire shape of auth responses
type sessionDTO struct {
	AccountID string `json:"account_id"`
	Token     string `json:"token"`
}

func (d sessionDTO) toSession() (Session, error) {
	if d.AccountID == "" || d.Token == "" {
		return Session{}, fmt.Errorf("%w: auth response missing account_id or token", ErrMalformedResponse)
	}
	return Session{AccountID: d.AccountID, Token: d.Token}, nil
}

// balanceDTO is the wire shape of the balance endpoint. The backend
// sends amounts as strings; they are never decoded through float64.
type balanceDTO struct {
	Balance string `json:"balance"`
}

// walletDTO is the wire shape of a wallet
type walletDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
	Goal    string `json:"goal"`
	State   string `json:"state"`
}

func (d walletDTO) toWallet() (Wallet, error) {
	if d.ID == "" {
		return Wallet{}, fmt.Errorf("%w: wallet missing id", ErrMalformedResponse)
	}

	balance, err := money.Parse(d.Balance)
	if err != nil {
		return Wallet{}, fmt.Errorf("wallet %s balance: %w", d.ID, err)
	}

	goal := decimal.Zero
	if d.Goal != "" {
		goal, err = money.Parse(d.Goal)
		if err != nil {
			return Wallet{}, fmt.Errorf("wallet %s goal: %w", d.ID, err)
		}
	}

	return Wallet{
		ID:      d.ID,
		Name:    d.Name,
		Balance: balance,
		Goal:    goal,
		State:   WalletState(d.State),
	}, nil
}

// walletTxDTO is the wire shape of one wallet movement
type walletTxDTO struct {
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	OccurredAt string `json:"occurred_at"` // RFC3339
}

func (d walletTxDTO) toTransaction() (ledger.WalletTransaction, error) {
	kind := ledger.TxKind(d.Kind)
	if !kind.IsValid() {
		return ledger.WalletTransaction{}, fmt.Errorf("%w: wallet transaction kind %q", ErrMalformedResponse, d.Kind)
	}

	amount, err := money.Parse(d.Amount)
	if err != nil {
		return ledger.WalletTransaction{}, fmt.Errorf("wallet transaction amount: %w", err)
	}

	occurredAt, err := time.Parse(time.RFC3339, d.OccurredAt)
	if err != nil {
		return ledger.WalletTransaction{}, fmt.Errorf("%w: wallet transaction occurred_at %q", ErrMalformedResponse, d.OccurredAt)
	}

	return ledger.WalletTransaction{Kind: kind, Amount: amount, OccurredAt: occurredAt}, nil
}

// statementEntryDTO is the wire shape of one extract row
type statementEntryDTO struct {
	ID     string `json:"id"`
	Date   string `json:"date"` // RFC3339
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

func (d statementEntryDTO) toEntry() (StatementEntry, error) {
	if d.ID == "" {
		return StatementEntry{}, fmt.Errorf("%w: statement entry missing id", ErrMalformedResponse)
	}

	date, err := time.Parse(time.RFC3339, d.Date)
	if err != nil {
		return StatementEntry{}, fmt.Errorf("%w: statement entry %s date %q", ErrMalformedResponse, d.ID, d.Date)
	}

	amount, err := money.Parse(d.Amount)
	if err != nil {
		return StatementEntry{}, fmt.Errorf("statement entry %s amount: %w", d.ID, err)
	}

	return StatementEntry{ID: d.ID, Date: date, Type: d.Type, Amount: amount}, nil
}
