// Package client queries a cestz server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/codeGROOVE-dev/retry"

	"github.com/codeGROOVE-dev/cestz/pkg/api"
	"github.com/codeGROOVE-dev/cestz/pkg/tzconvert"
	"github.com/codeGROOVE-dev/cestz/pkg/zone"
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// retryable reports whether the status is worth another attempt.
func (e *APIError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// Client calls the cestz HTTP API.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	delay      time.Duration
	attempts   uint
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.Default(),
		attempts:   5,
		delay:      time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OffsetOfInstant asks for the offset in effect at t.
func (c *Client) OffsetOfInstant(ctx context.Context, t time.Time) (*api.OffsetResponse, error) {
	var resp api.OffsetResponse
	q := url.Values{"instant": {t.UTC().Format(time.RFC3339Nano)}}
	if err := c.get(ctx, "/api/v1/offset", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OffsetOfLocalDateTime asks for the best-fit offset of a wall-clock reading.
func (c *Client) OffsetOfLocalDateTime(ctx context.Context, dt civil.DateTime) (*api.LocalResponse, error) {
	var resp api.LocalResponse
	q := url.Values{"datetime": {tzconvert.FormatLocal(dt)}}
	if err := c.get(ctx, "/api/v1/local", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IsValidOffset asks whether offset is the best fit for dt.
func (c *Client) IsValidOffset(ctx context.Context, dt civil.DateTime, offset zone.Offset) (bool, error) {
	var resp api.ValidResponse
	q := url.Values{"datetime": {tzconvert.FormatLocal(dt)}, "offset": {offset.String()}}
	if err := c.get(ctx, "/api/v1/valid", q, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Transitions asks for the transition boundaries of year.
func (c *Client) Transitions(ctx context.Context, year int) (*api.TransitionsResponse, error) {
	var resp api.TransitionsResponse
	q := url.Values{"year": {strconv.Itoa(year)}}
	if err := c.get(ctx, "/api/v1/transitions", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs a GET with exponential backoff. Transport errors, 429 and
// 5xx replies are retried; other failures return immediately.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("requesting %s: %w", path, err)
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Debug("failed to close response body", "error", closeErr)
				}
			}()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading %s response: %w", path, err)
			}

			if resp.StatusCode != http.StatusOK {
				apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
				var e api.ErrorResponse
				if json.Unmarshal(body, &e) == nil && e.Error != "" {
					apiErr.Message = e.Error
				}
				if apiErr.retryable() {
					return apiErr
				}
				return retry.Unrecoverable(apiErr)
			}

			if err := json.Unmarshal(body, out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decoding %s response: %w", path, err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying request",
				"attempt", n+1,
				"path", path,
				"error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
