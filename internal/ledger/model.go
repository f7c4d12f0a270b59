package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxKind is the direction of a wallet movement as reported by the backend.
// Sign is carried here, never by a negative amount.
type TxKind string

const (
	KindDeposit    TxKind = "DEPOSITO_CARTEIRA"
	KindWithdrawal TxKind = "SAQUE_CARTEIRA"
)

// IsValid checks if the kind is one of the wallet-scoped operation types
func (k TxKind) IsValid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// WalletTransaction is a single deposit or withdrawal event of a wallet,
// as fetched from the backend. Read-only once constructed.
type WalletTransaction struct {
	Kind       TxKind          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Snapshot pairs a wallet's backend-reported balance with the
// transaction list fetched in the same refresh cycle. The order of
// Transactions matters only for display, never for reconciliation.
type Snapshot struct {
	CurrentBalance decimal.Decimal
	Transactions   []WalletTransaction
}
