package prefs

import "errors"

var (
	ErrNotFound    = errors.New("preference not found")
	ErrInvalidIcon = errors.New("unknown icon tag")
)
