// Package httpclient is the shared HTTP layer for appliance-API connectors:
// Bearer auth, JSON decoding, and retry on throttling and server faults.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	userAgent      = "scoop/1.0"
	defaultRetries = 3
	maxErrBody     = 512
)

// Client issues authenticated GET requests against one API base URL.
type Client struct {
	base    string
	token   string
	hc      *http.Client
	retries int
}

// APIError is a non-2xx response. Body carries at most the first 512 bytes
// of the response so an appliance-side HTML error page does not flood logs.
type APIError struct {
	StatusCode int
	Body       string

	retryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// retryable reports whether another attempt could succeed. Throttling and
// server faults are transient; client errors are not.
func (e *APIError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithRetries sets how many retry attempts follow a transient failure.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// New creates a Client for the given base URL and Bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		base:    baseURL,
		token:   token,
		hc:      &http.Client{Timeout: 30 * time.Second},
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches path with the optional query and decodes the JSON response
// into dest. Transient failures (429, 5xx) are retried with exponential
// backoff; a 429 Retry-After header overrides the computed delay. Non-2xx
// responses surface as *APIError.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr *APIError
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, delayFor(attempt, lastErr)); err != nil {
				return err
			}
		}

		apiErr, err := c.attempt(ctx, target, dest)
		if err != nil {
			return err
		}
		if apiErr == nil {
			return nil
		}
		if !apiErr.retryable() {
			return apiErr
		}
		lastErr = apiErr
	}
	return lastErr
}

// attempt performs one request. A nil, nil return means success with dest
// populated; a non-nil *APIError means the server answered with non-2xx.
func (c *Client) attempt(ctx context.Context, target string, dest any) (*APIError, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil, json.Unmarshal(body, dest)
	}

	snippet := string(body)
	if len(snippet) > maxErrBody {
		snippet = snippet[:maxErrBody]
	}
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: snippet}
	if resp.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			apiErr.retryAfter = time.Duration(secs) * time.Second
		}
	}
	return apiErr, nil
}

// delayFor picks the wait before retry attempt n: the server's Retry-After
// hint when present, otherwise 1s, 2s, 4s, ...
func delayFor(attempt int, lastErr *APIError) time.Duration {
	if lastErr != nil && lastErr.retryAfter > 0 {
		return lastErr.retryAfter
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
