package wallet

import "errors"

var (
	// Validation errors
	ErrMissingWalletName = errors.New("wallet name is required")
	ErrWalletNameTooLong = errors.New("wallet name exceeds 100 characters")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNegativeGoal      = errors.New("goal must not be negative")

	// Refresh errors
	ErrStaleRefresh = errors.New("refresh superseded by a newer cycle")
)
