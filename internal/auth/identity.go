package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/indoha-commits/cargo-portal/internal/shared"
)

// IdentityClient wraps the external identity provider's token endpoint.
// The provider owns credentials, sessions and token lifetimes; the portal
// only exchanges credentials for a bearer token.
type IdentityClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIdentityClient constructs a client for the given provider base URL.
func NewIdentityClient(baseURL string, timeout time.Duration) *IdentityClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &IdentityClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ExchangeToken trades credentials for an access token. Credential failures
// surface as shared.ErrInvalidCredentials; anything else keeps the
// provider's status and body.
func (c *IdentityClient) ExchangeToken(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(tokenRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("identity: encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("identity: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity: token request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return "", shared.ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("identity: token request: status %d: %s", resp.StatusCode, string(detail))
	}

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("identity: decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("identity: token response missing access_token")
	}
	return out.AccessToken, nil
}
