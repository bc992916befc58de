package freight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUploadBackend wires a fake API that issues signed URLs pointing at the
// given storage server.
func newUploadBackend(t *testing.T, storageURL string, grantPath string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/upload-url"), "unexpected path %s", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["document_type"])
		assert.NotEmpty(t, body["file_name"])
		resp := fmt.Sprintf(`{"path":%q,"signed_url":%q,"expires_in":600}`, grantPath, storageURL+"/put-here")
		_, _ = w.Write([]byte(resp))
	}))
}

func TestUploadDocumentTwoPhaseFlow(t *testing.T) {
	var putContentType string
	var putBody []byte
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		putContentType = r.Header.Get("Content-Type")
		var err error
		putBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Empty(t, r.Header.Get("Authorization"), "storage PUT must not carry the API bearer token")
		w.WriteHeader(http.StatusOK)
	}))
	defer storage.Close()

	backend := newUploadBackend(t, storage.URL, "cargo/c1/invoice.pdf")
	defer backend.Close()

	client := NewClient(backend.URL, time.Second)
	path, err := client.UploadDocument(context.Background(), "tok", "c1", DocCommercialInvoice, "invoice.pdf", "application/pdf", strings.NewReader("%PDF-1.7 data"))
	require.NoError(t, err)
	assert.Equal(t, "cargo/c1/invoice.pdf", path)
	assert.Equal(t, "application/pdf", putContentType)
	assert.Equal(t, "%PDF-1.7 data", string(putBody))
}

func TestUploadDocumentDefaultsContentType(t *testing.T) {
	var putContentType string
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		putContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer storage.Close()

	backend := newUploadBackend(t, storage.URL, "cargo/c1/file.bin")
	defer backend.Close()

	client := NewClient(backend.URL, time.Second)
	_, err := client.UploadDocument(context.Background(), "tok", "c1", DocPackingList, "file.bin", "", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", putContentType)
}

func TestUploadDocumentSurfacesStorageError(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("signature expired"))
	}))
	defer storage.Close()

	backend := newUploadBackend(t, storage.URL, "cargo/c1/file.bin")
	defer backend.Close()

	client := NewClient(backend.URL, time.Second)
	_, err := client.UploadDocument(context.Background(), "tok", "c1", DocPackingList, "file.bin", "", strings.NewReader("bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "signature expired")
}

func TestCreateUploadURLRequiresSignedURL(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"path":"cargo/c1/x","expires_in":600}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL, time.Second)
	_, err := client.CreateUploadURL(context.Background(), "tok", "c1", DocPackingList, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing signed_url")
}
