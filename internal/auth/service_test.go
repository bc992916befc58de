package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indoha-commits/cargo-portal/internal/freight"
)

type stubExchanger struct {
	token string
	err   error
}

func (s stubExchanger) ExchangeToken(ctx context.Context, email, password string) (string, error) {
	return s.token, s.err
}

type stubResolver struct {
	identity *freight.Identity
	err      error
}

func (s stubResolver) Me(ctx context.Context, token string) (*freight.Identity, error) {
	return s.identity, s.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, TokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signedToken(t, now.Add(-time.Minute)), now))
}

func TestTokenExpiredOpaqueTokensLeftToBackend(t *testing.T) {
	now := time.Now()
	assert.False(t, TokenExpired("opaque-session-token", now))
	assert.False(t, TokenExpired("", now))
}

func TestSignInResolvesIdentity(t *testing.T) {
	svc := NewService(
		stubExchanger{token: "tok-1"},
		stubResolver{identity: &freight.Identity{ID: "u1", Email: "client@example.com", Role: freight.RoleClient, ClientID: "acme"}},
	)

	token, who, err := svc.SignIn(context.Background(), "client@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, freight.RoleClient, who.Role)
	assert.Equal(t, "acme", who.ClientID)
}

func TestSignInPropagatesExchangeFailure(t *testing.T) {
	wantErr := errors.New("provider down")
	svc := NewService(stubExchanger{err: wantErr}, stubResolver{})

	_, _, err := svc.SignIn(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, wantErr)
}

func TestSignInPropagatesMeFailure(t *testing.T) {
	wantErr := errors.New("backend down")
	svc := NewService(stubExchanger{token: "tok"}, stubResolver{err: wantErr})

	_, _, err := svc.SignIn(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, wantErr)
}
