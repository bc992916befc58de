package shipments

import (
	"time"

	"github.com/indoha-commits/cargo-portal/internal/freight"
)

// Row drives one line of the shipment list page.
type Row struct {
	ID             string
	Route          string
	Vessel         string
	ContainerCount int
	ETADisplay     string
	Status         string
	SLA            *SLAHint
}

// DocumentVM drives one line of the documents table on the detail page.
type DocumentVM struct {
	ID          string
	TypeLabel   string
	Status      string
	StatusLabel string
	UploadedAt  string
	VerifiedAt  string
	HasFile     bool
}

// ApprovalVM drives one approval card on the detail page.
type ApprovalVM struct {
	ID              string
	KindLabel       string
	Status          string
	StatusLabel     string
	FileName        string
	DecidedAt       string
	DecidedBy       string
	RejectionReason string
	Pending         bool
}

// DetailVM drives the shipment detail page.
type DetailVM struct {
	Cargo      freight.Cargo
	Route      string
	ETADisplay string
	SLA        *SLAHint
	NextAction *ActionLabel
	Totals     *freight.Projection
	Documents  []DocumentVM
	Approvals  []ApprovalVM
	Timeline   []TimelineEntry
	// Derived is true when the timeline was synthesized from side data
	// because the backend returned no discrete events.
	Derived bool
}

// NewRows maps backend shipment summaries into list rows.
func NewRows(summaries []freight.ShipmentSummary, now time.Time) []Row {
	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, Row{
			ID:             s.ID,
			Route:          s.Origin + " → " + s.Destination,
			Vessel:         s.Vessel,
			ContainerCount: s.ContainerCount,
			ETADisplay:     displayTime(s.ETA),
			Status:         humanizeEnum(s.Status),
			SLA:            SLAFor(s.ETA, now),
		})
	}
	return rows
}

// NewDetail maps the cargo detail bundle plus approvals into the detail
// view model. When the backend supplies discrete events those win;
// otherwise the timeline is derived from document and approval timestamps.
func NewDetail(detail *freight.CargoDetail, approvals []freight.Approval, now time.Time) DetailVM {
	vm := DetailVM{
		Cargo:      detail.Cargo,
		Route:      detail.Cargo.Origin + " → " + detail.Cargo.Destination,
		ETADisplay: displayTime(detail.Cargo.ETA),
		SLA:        SLAFor(detail.Cargo.ETA, now),
		Totals:     detail.Projection,
	}

	if detail.Projection != nil && detail.Projection.NextRequiredAction != "" {
		action := FormatNextAction(detail.Projection.NextRequiredAction)
		vm.NextAction = &action
	}

	for _, doc := range detail.Documents {
		vm.Documents = append(vm.Documents, DocumentVM{
			ID:          doc.ID,
			TypeLabel:   humanizeEnum(doc.DocumentType),
			Status:      doc.Status,
			StatusLabel: humanizeEnum(doc.Status),
			UploadedAt:  displayTime(doc.UploadedAt),
			VerifiedAt:  displayTime(doc.VerifiedAt),
			HasFile:     doc.Status != freight.DocStatusPending,
		})
	}

	for _, approval := range approvals {
		vm.Approvals = append(vm.Approvals, ApprovalVM{
			ID:              approval.ID,
			KindLabel:       humanizeEnum(approval.Kind),
			Status:          approval.Status,
			StatusLabel:     humanizeEnum(approval.Status),
			FileName:        approval.FileName,
			DecidedAt:       displayTime(approval.DecidedAt),
			DecidedBy:       approval.DecidedBy,
			RejectionReason: approval.RejectionReason,
			Pending:         approval.Status == freight.ApprovalStatusPending,
		})
	}

	if len(detail.Events) > 0 {
		vm.Timeline = EventTimeline(detail.Events)
	} else {
		vm.Timeline = DeriveTimeline(detail.Cargo, detail.Documents, approvals)
		vm.Derived = true
	}
	return vm
}

// displayTime formats a backend timestamp for rendering, passing the raw
// value through when it does not parse (display only, never compared).
func displayTime(raw string) string {
	at, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return at.Format("02 Jan 2006 15:04")
}
