package freight

import (
	"context"
	"fmt"
)

// ListShipments fetches the caller's shipment summary rows.
func (c *Client) ListShipments(ctx context.Context, token string) ([]ShipmentSummary, error) {
	var out []ShipmentSummary
	if err := c.get(ctx, token, "/client/shipments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCargo fetches the detail bundle for one cargo: the cargo record, its
// documents, discrete events when the backend has any, and the projection.
func (c *Client) GetCargo(ctx context.Context, token, cargoID string) (*CargoDetail, error) {
	var out CargoDetail
	if err := c.get(ctx, token, "/client/cargo/"+cargoID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated identity for post-login role routing.
func (c *Client) Me(ctx context.Context, token string) (*Identity, error) {
	var out Identity
	if err := c.get(ctx, token, "/me", &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("freight: GET /me: response missing id")
	}
	return &out, nil
}
