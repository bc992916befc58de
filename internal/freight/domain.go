package freight

// Document types issued by the freight backend. The set is open: new types
// may appear without a portal release, so nothing here is exhaustive.
const (
	DocBillOfLading      = "BILL_OF_LADING"
	DocCommercialInvoice = "COMMERCIAL_INVOICE"
	DocPackingList       = "PACKING_LIST"
	DocImportPermit      = "IMPORT_PERMIT"
	DocImportLicense     = "IMPORT_LICENSE"
	DocTypeApproval      = "TYPE_APPROVAL"
)

// Document statuses. Transitions are backend-owned; the portal only
// triggers uploads and renders the resulting state.
const (
	DocStatusPending  = "PENDING"
	DocStatusUploaded = "UPLOADED"
	DocStatusVerified = "VERIFIED"
)

// Approval kinds and statuses.
const (
	ApprovalDeclarationDraft = "DECLARATION_DRAFT"
	ApprovalAssessment       = "ASSESSMENT"

	ApprovalStatusPending  = "PENDING"
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
	ApprovalStatusExpired  = "EXPIRED"
)

// User roles reported by GET /me.
const (
	RoleClient = "client"
	RoleOps    = "ops"
	RoleAdmin  = "admin"
)

// ShipmentSummary is one row of GET /client/shipments.
type ShipmentSummary struct {
	ID             string `json:"id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Vessel         string `json:"vessel"`
	ContainerCount int    `json:"container_count"`
	ETA            string `json:"eta"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// Cargo is the detail record for a single shipment.
//
// Timestamps stay raw strings end to end: the backend owns their format and
// the view layer decides what to do with values it cannot parse.
type Cargo struct {
	ID              string `json:"id"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	Vessel          string `json:"vessel"`
	ContainerCount  int    `json:"container_count"`
	ExpectedArrival string `json:"expected_arrival"`
	ETA             string `json:"eta"`
	CreatedAt       string `json:"created_at"`
}

// Document is a required or uploaded shipping document.
type Document struct {
	ID           string `json:"id"`
	CargoID      string `json:"cargo_id"`
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
	DriveURL     string `json:"drive_url,omitempty"`
	UploadedAt   string `json:"uploaded_at,omitempty"`
	VerifiedAt   string `json:"verified_at,omitempty"`
}

// Approval is a declaration draft or assessment pending client decision.
type Approval struct {
	ID              string `json:"id"`
	CargoID         string `json:"cargo_id"`
	Kind            string `json:"kind"`
	Status          string `json:"status"`
	FileName        string `json:"file_name,omitempty"`
	CreatedAt       string `json:"created_at"`
	DecidedAt       string `json:"decided_at,omitempty"`
	DecidedBy       string `json:"decided_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// Event is one entry of the backend's append-only audit trail.
type Event struct {
	ID         string `json:"id"`
	EventType  string `json:"event_type"`
	EventTime  string `json:"event_time"`
	Actor      string `json:"actor,omitempty"`
	Location   string `json:"location,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

// Projection is the backend-computed summary for a cargo. The portal treats
// it as opaque display state and never recomputes it.
type Projection struct {
	NextRequiredAction string `json:"next_required_action"`
	DocumentsTotal     int    `json:"documents_total"`
	DocumentsUploaded  int    `json:"documents_uploaded"`
	DocumentsVerified  int    `json:"documents_verified"`
}

// CargoDetail bundles everything GET /client/cargo/{id} returns.
type CargoDetail struct {
	Cargo      Cargo       `json:"cargo"`
	Documents  []Document  `json:"documents"`
	Events     []Event     `json:"events"`
	Projection *Projection `json:"projection,omitempty"`
}

// Identity is the response of GET /me, used for post-login role routing.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ClientID string `json:"client_id"`
}

// SignedLink points at a document file, either in object storage or on a
// shared drive.
type SignedLink struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}
