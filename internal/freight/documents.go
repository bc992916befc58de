package freight

import (
	"context"
	"fmt"
)

type insertDocumentRequest struct {
	CargoID      string `json:"cargo_id"`
	DocumentType string `json:"document_type"`
	DriveURL     string `json:"drive_url"`
}

type insertDocumentResponse struct {
	ID string `json:"id"`
}

// DocumentSignedURL resolves a short-lived link to the document's file.
func (c *Client) DocumentSignedURL(ctx context.Context, token, documentID string) (*SignedLink, error) {
	var out SignedLink
	if err := c.get(ctx, token, "/client/documents/"+documentID+"/signed-url", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InsertDocument registers an already-uploaded file against a cargo and
// returns the new document record's id. The driveURL is the storage object
// path returned by the upload phase, not a public URL.
func (c *Client) InsertDocument(ctx context.Context, token, cargoID, documentType, driveURL string) (string, error) {
	req := insertDocumentRequest{
		CargoID:      cargoID,
		DocumentType: documentType,
		DriveURL:     driveURL,
	}
	var out insertDocumentResponse
	if err := c.post(ctx, token, "/client/documents", req, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("freight: POST /client/documents: response missing id")
	}
	return out.ID, nil
}
