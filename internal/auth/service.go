package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/indoha-commits/cargo-portal/internal/freight"
)

// TokenExchanger abstracts the identity provider for tests.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, email, password string) (string, error)
}

// IdentityResolver abstracts the freight backend's GET /me for tests.
type IdentityResolver interface {
	Me(ctx context.Context, token string) (*freight.Identity, error)
}

// Service wraps the sign-in flow: exchange credentials for a token, then
// resolve the identity behind it for role routing. No credential is ever
// validated locally.
type Service struct {
	identity TokenExchanger
	backend  IdentityResolver
}

// NewService constructs a new Service.
func NewService(identity TokenExchanger, backend IdentityResolver) *Service {
	return &Service{identity: identity, backend: backend}
}

// SignIn authenticates against the identity provider and resolves the
// account's role via the freight backend.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *freight.Identity, error) {
	token, err := s.identity.ExchangeToken(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	who, err := s.backend.Me(ctx, token)
	if err != nil {
		return "", nil, err
	}
	return token, who, nil
}

// TokenExpired reports whether a JWT access token has passed its exp claim.
// The signature is not verified here: the provider signs and the backend
// verifies; the portal only reads the expiry to redirect to login before
// issuing a doomed backend call. Opaque tokens and tokens without exp are
// treated as unexpired and left for the backend to reject.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
