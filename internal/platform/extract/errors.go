package extract

import "errors"

var (
	// ErrStaleRefresh means a newer refresh superseded this one while
	// its fetches were in flight. Callers retry or keep the last view.
	ErrStaleRefresh = errors.New("statement refresh superseded")

	// ErrUnknownFilter is returned when a filter names a transaction
	// code outside the classification table.
	ErrUnknownFilter = errors.New("unknown transaction code filter")
)
