// Package bankapi is the HTTP client for the remote core-banking
// backend. All business logic, persistence, and authentication live on
// that side; this client only shapes requests and decodes responses,
// failing closed on anything it cannot type.
package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/carteira-app/carteira/pkg/logger"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client is an HTTP client for the core-banking REST API
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new core-banking API client
func NewClient(baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		logger:  log.WithField("component", "bankapi"),
	}
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// doRequest performs an HTTP request with rate-limit retry. It retries
// up to maxRetries times with exponential backoff (1s, 2s, 4s) on 429
// responses. token is the session bearer token; empty for auth routes.
func (c *Client) doRequest(ctx context.Context, method, path, token string, params url.Values, payload interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	backoff := time.Second
	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.logger.Debug("API request", "method", method, "path", path, "attempt", attempt)
		attemptStart := time.Now()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Debug("API response", "status_code", resp.StatusCode, "duration_ms", time.Since(attemptStart).Milliseconds())
			return respBody, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries {
				c.logger.Error("rate limit exhausted", "attempts", maxRetries+1)
				return nil, &RateLimitError{
					RetryAfter: backoff,
					Message:    "core-banking API rate limit exceeded after retries",
				}
			}
			c.logger.Warn("rate limited, retrying", "attempt", attempt, "backoff_ms", backoff.Milliseconds())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				continue
			}
		}

		c.logger.Error("API error", "status_code", resp.StatusCode, "path", path)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return nil, fmt.Errorf("core-banking API: exhausted retries")
}

// decode unmarshals a response body. Extra fields are tolerated (the
// backend evolves independently); ill-typed ones are a typed error.
// Required-field and amount checks happen in the DTO conversions.
func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
