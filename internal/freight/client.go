package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/indoha-commits/cargo-portal/internal/shared"
)

// DefaultTimeout bounds every backend call when no other timeout is set.
const DefaultTimeout = 20 * time.Second

// Client wraps interactions with the freight backend REST API.
//
// All business logic lives behind that API; the client only attaches
// credentials, bounds the call and decodes JSON. There are no retries:
// a single failed attempt is surfaced to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do issues a single JSON request with the bearer token attached and decodes
// the response into out when out is non-nil.
//
// 401 and 403 responses, timeouts and cancelled contexts all surface as
// shared.ErrSessionExpired so callers can force a re-login exactly once.
// Any other non-2xx status yields an error carrying the method, path,
// status and response body.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("freight: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("freight: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("freight: %s %s timed out: %w", method, path, shared.ErrSessionExpired)
		}
		return fmt.Errorf("freight: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("freight: %s %s: status %d: %w", method, path, resp.StatusCode, shared.ErrSessionExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("freight: %s %s: status %d: %s", method, path, resp.StatusCode, string(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("freight: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, token, path string, out any) error {
	return c.do(ctx, token, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, token, http.MethodPost, path, body, out)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}
