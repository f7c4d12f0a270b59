package ledger

import "errors"

var (
	// ErrInvalidKind means a transaction carried a kind outside the
	// wallet operation set.
	ErrInvalidKind = errors.New("invalid transaction kind")
	// ErrInvalidAmount wraps money.ErrInvalidAmount for amounts that
	// violate the non-negative contract.
	ErrInvalidAmount = errors.New("invalid transaction amount")
)
