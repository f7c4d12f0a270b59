package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/ledger"
)

// Wallet is the wallet view model the screens render
type Wallet struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Goal    decimal.Decimal `json:"goal"`
	State   string          `json:"state"`
}

// Detail is the fully derived wallet screen payload: the wallet, its
// movement history, the client-side opening balance, goal progress,
// and the saved icon preference.
type Detail struct {
	Wallet         Wallet                     `json:"wallet"`
	Icon           string                     `json:"icon"`
	OpeningBalance decimal.Decimal            `json:"opening_balance"`
	GoalProgress   decimal.Decimal            `json:"goal_progress"`
	Transactions   []ledger.WalletTransaction `json:"transactions"`
}

func fromGateway(w bankapi.Wallet) Wallet {
	return Wallet{
		ID:      w.ID,
		Name:    w.Name,
		Balance: w.Balance,
		Goal:    w.Goal,
		State:   string(w.State),
	}
}

// goalProgress computes balance/goal to 4 places, clamped to [0, 1].
// A wallet without a goal reports zero progress.
func goalProgress(balance, goal decimal.Decimal) decimal.Decimal {
	if goal.Sign() <= 0 {
		return decimal.Zero
	}
	progress := balance.DivRound(goal, 4)
	one := decimal.NewFromInt(1)
	if progress.GreaterThan(one) {
		return one
	}
	if progress.Sign() < 0 {
		return decimal.Zero
	}
	return progress
}
