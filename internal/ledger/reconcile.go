package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The backend never exposes a wallet's opening balance; it is always
// derived client-side from the current snapshot:
//
//	opening = current − Σ deposits + Σ withdrawals
//
// Both functions below are pure, do not mutate their inputs, and fail
// closed: a list containing a negative amount or an unknown kind yields
// an error, never a plausible-looking sum.

// OpeningBalance computes the balance the wallet would have shown
// before any of the recorded events were applied. An empty list is the
// identity: the result equals current exactly.
func OpeningBalance(current decimal.Decimal, txs []WalletTransaction) (decimal.Decimal, error) {
	deposits, withdrawals, err := totals(txs)
	if err != nil {
		return decimal.Zero, err
	}
	return current.Sub(deposits).Add(withdrawals), nil
}

// CurrentBalance is the inverse of OpeningBalance, used when
// constructing a wallet view before any backend write:
//
//	current = opening + Σ deposits − Σ withdrawals
//
// Round-trip holds exactly: OpeningBalance(CurrentBalance(b, txs), txs) == b.
func CurrentBalance(opening decimal.Decimal, txs []WalletTransaction) (decimal.Decimal, error) {
	deposits, withdrawals, err := totals(txs)
	if err != nil {
		return decimal.Zero, err
	}
	return opening.Add(deposits).Sub(withdrawals), nil
}

// totals partitions the list by kind and sums each side exactly.
func totals(txs []WalletTransaction) (deposits, withdrawals decimal.Decimal, err error) {
	deposits = decimal.Zero
	withdrawals = decimal.Zero

	for i, tx := range txs {
		if tx.Amount.Sign() < 0 {
			return decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: transaction %d has negative amount %s", ErrInvalidAmount, i, tx.Amount)
		}
		switch tx.Kind {
		case KindDeposit:
			deposits = deposits.Add(tx.Amount)
		case KindWithdrawal:
			withdrawals = withdrawals.Add(tx.Amount)
		default:
			return decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: transaction %d has kind %q", ErrInvalidKind, i, tx.Kind)
		}
	}
	return deposits, withdrawals, nil
}
