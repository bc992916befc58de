package freight

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indoha-commits/cargo-portal/internal/shared"
)

func TestListShipmentsAttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		assert.Equal(t, "/client/shipments", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"c1","origin":"Shanghai","destination":"Jakarta","container_count":3}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	rows, err := client.ListShipments(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c1", rows[0].ID)
	assert.Equal(t, 3, rows[0].ContainerCount)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestUnauthorizedSurfacesSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListShipments(context.Background(), "stale")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestForbiddenSurfacesSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.GetCargo(context.Background(), "tok", "c1")
	assert.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestTimeoutSurfacesSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.ListShipments(context.Background(), "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestErrorCarriesMethodPathStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("approval already decided"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.ApproveApproval(context.Background(), "tok", "a1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POST")
	assert.Contains(t, err.Error(), "/client/approvals/a1/approve")
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "approval already decided")
	assert.NotErrorIs(t, err, shared.ErrSessionExpired)
}

func TestRejectApprovalSendsReason(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	require.NoError(t, client.RejectApproval(context.Background(), "tok", "a1", "figures do not match the invoice"))
	assert.Equal(t, "figures do not match the invoice", body["rejection_reason"])
}

func TestInsertDocumentSendsSnakeCaseKeys(t *testing.T) {
	var raw []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		raw, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		_, _ = w.Write([]byte(`{"id":"doc-42"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	id, err := client.InsertDocument(context.Background(), "tok", "c1", DocPackingList, "cargo/c1/packing.pdf")
	require.NoError(t, err)
	assert.Equal(t, "doc-42", id)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "c1", body["cargo_id"])
	assert.Equal(t, DocPackingList, body["document_type"])
	assert.Equal(t, "cargo/c1/packing.pdf", body["drive_url"])
	assert.NotContains(t, string(raw), "cargoID")
}

func TestInsertDocumentFailsWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.InsertDocument(context.Background(), "tok", "c1", DocPackingList, "cargo/c1/packing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestMeFailsWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email":"someone@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Me(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}
