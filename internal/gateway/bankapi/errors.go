package bankapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrMalformedResponse means the backend returned a body that does not
// decode into the expected schema. Nothing partially decoded is ever
// propagated into arithmetic.
var ErrMalformedResponse = errors.New("malformed backend response")

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("core-banking API error: status %d, body: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a backend 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// RateLimitError represents a rate limit error from the backend
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is (or wraps) a rate limit error
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
