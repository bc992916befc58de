package freight

import "context"

type rejectRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// ListApprovals fetches draft/assessment approvals for a cargo.
func (c *Client) ListApprovals(ctx context.Context, token, cargoID string) ([]Approval, error) {
	var out []Approval
	if err := c.get(ctx, token, "/client/cargo/"+cargoID+"/approvals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveApproval asks the backend to move a PENDING approval to APPROVED.
// Any other transition is refused server-side and surfaces as an error.
func (c *Client) ApproveApproval(ctx context.Context, token, approvalID string) error {
	return c.post(ctx, token, "/client/approvals/"+approvalID+"/approve", nil, nil)
}

// RejectApproval asks the backend to move a PENDING approval to REJECTED,
// recording the client's reason.
func (c *Client) RejectApproval(ctx context.Context, token, approvalID, reason string) error {
	return c.post(ctx, token, "/client/approvals/"+approvalID+"/reject", rejectRequest{RejectionReason: reason}, nil)
}

// ApprovalSignedURL resolves a short-lived link to the approval's file.
func (c *Client) ApprovalSignedURL(ctx context.Context, token, approvalID string) (*SignedLink, error) {
	var out SignedLink
	if err := c.get(ctx, token, "/client/approvals/"+approvalID+"/signed-url", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
