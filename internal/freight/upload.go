package freight

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type createUploadURLRequest struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
}

// UploadGrant is the backend's answer to an upload-url request: where to PUT
// the bytes and which storage path to register afterwards.
type UploadGrant struct {
	Path      string `json:"path"`
	SignedURL string `json:"signed_url"`
	ExpiresIn int    `json:"expires_in"`
}

// CreateUploadURL asks the backend for a signed upload URL for one file.
func (c *Client) CreateUploadURL(ctx context.Context, token, cargoID, documentType, fileName string) (*UploadGrant, error) {
	req := createUploadURLRequest{DocumentType: documentType, FileName: fileName}
	var out UploadGrant
	if err := c.post(ctx, token, "/client/cargo/"+cargoID+"/upload-url", req, &out); err != nil {
		return nil, err
	}
	if out.SignedURL == "" {
		return nil, fmt.Errorf("freight: POST /client/cargo/%s/upload-url: response missing signed_url", cargoID)
	}
	return &out, nil
}

// UploadDocument runs the first two phases of the upload flow: request a
// signed URL, then PUT the file bytes straight to object storage so large
// bodies never pass through the API layer. It returns the storage object
// path for the caller to register via InsertDocument.
func (c *Client) UploadDocument(ctx context.Context, token, cargoID, documentType, fileName, contentType string, file io.Reader) (string, error) {
	grant, err := c.CreateUploadURL(ctx, token, cargoID, documentType, fileName)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, grant.SignedURL, file)
	if err != nil {
		return "", fmt.Errorf("freight: build storage upload: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("freight: storage upload: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("freight: storage upload: status %d: %s", resp.StatusCode, string(detail))
	}
	return grant.Path, nil
}
