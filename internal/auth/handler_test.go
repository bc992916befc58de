package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/indoha-commits/cargo-portal/internal/auth"
	"github.com/indoha-commits/cargo-portal/internal/freight"
	"github.com/indoha-commits/cargo-portal/internal/shared"
	"github.com/indoha-commits/cargo-portal/internal/view"
	_ "github.com/indoha-commits/cargo-portal/testing"
)

type stubIdentity struct {
	token string
	err   error
}

func (s stubIdentity) ExchangeToken(ctx context.Context, email, password string) (string, error) {
	return s.token, s.err
}

type stubBackend struct {
	identity *freight.Identity
	err      error
}

func (s stubBackend) Me(ctx context.Context, token string) (*freight.Identity, error) {
	return s.identity, s.err
}

func newAuthHandler(t *testing.T, identity auth.TokenExchanger, backend auth.IdentityResolver) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	handler := auth.NewHandler(nil, auth.NewService(identity, backend), templates, sessionManager, csrfManager)
	return handler, sessionManager
}

func TestLoginPage(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, stubIdentity{}, stubBackend{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	handler.ShowLoginForTest(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "<form") {
		t.Fatalf("expected login form in body")
	}
}

func postLogin(t *testing.T, handler *auth.Handler, sessionManager *shared.SessionManager, email, password string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	postData := url.Values{}
	postData.Set("email", email)
	postData.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(postData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return res, sess
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, stubIdentity{err: shared.ErrInvalidCredentials}, stubBackend{})

	res, sess := postLogin(t, handler, sessionManager, "user@test.local", "wrongpass")

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Email or password is incorrect") {
		t.Fatalf("expected error message in response")
	}
	if sess.AccessToken() != "" {
		t.Fatalf("no token must be stored on failed login")
	}
}

func TestLoginStoresTokenAndRedirects(t *testing.T) {
	handler, sessionManager := newAuthHandler(t,
		stubIdentity{token: "tok-99"},
		stubBackend{identity: &freight.Identity{ID: "u1", Email: "client@test.local", Role: freight.RoleClient, ClientID: "acme"}},
	)

	res, sess := postLogin(t, handler, sessionManager, "client@test.local", "correct")

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/shipments" {
		t.Fatalf("expected redirect to /shipments, got %q", loc)
	}
	if sess.AccessToken() != "tok-99" {
		t.Fatalf("expected token stored in session, got %q", sess.AccessToken())
	}
	if sess.Role() != freight.RoleClient {
		t.Fatalf("expected client role stored, got %q", sess.Role())
	}
}

func TestLoginRejectsNonClientRoles(t *testing.T) {
	handler, sessionManager := newAuthHandler(t,
		stubIdentity{token: "tok-ops"},
		stubBackend{identity: &freight.Identity{ID: "u2", Email: "ops@test.local", Role: freight.RoleOps}},
	)

	res, sess := postLogin(t, handler, sessionManager, "ops@test.local", "correct")

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "client accounts only") {
		t.Fatalf("expected role routing message in response")
	}
	if sess.AccessToken() != "" {
		t.Fatalf("ops token must not be stored in a client portal session")
	}
}
