package shipments

import (
	"sort"
	"strings"
	"time"

	"github.com/indoha-commits/cargo-portal/internal/freight"
)

// TimelineEntry is one step of the shipment narrative shown on the detail
// page.
type TimelineEntry struct {
	Label    string
	At       time.Time
	Complete bool
}

// timestampLayouts covers the formats the backend has been seen emitting.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp string. The second return is
// false for empty or unparseable values; callers drop those entries rather
// than guessing.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveTimeline synthesizes a chronological narrative from cargo, document
// and approval records. It is used only when the backend returned no
// discrete events.
//
// Steps, in spirit: cargo created, documents uploaded (earliest upload),
// validation in progress (latest upload, only while nothing is verified
// yet), documents verified (latest verification), then one entry per
// approval. Entries with unparseable timestamps are dropped and the result
// is stably sorted ascending by time.
func DeriveTimeline(cargo freight.Cargo, docs []freight.Document, approvals []freight.Approval) []TimelineEntry {
	var entries []TimelineEntry

	if createdAt, ok := ParseTimestamp(cargo.CreatedAt); ok {
		entries = append(entries, TimelineEntry{Label: "Cargo created", At: createdAt, Complete: true})
	}

	var (
		earliestUpload, latestUpload time.Time
		latestVerify                 time.Time
		anyUploaded, anyVerified     bool
	)
	for _, doc := range docs {
		if doc.Status == freight.DocStatusUploaded || doc.Status == freight.DocStatusVerified {
			if at, ok := ParseTimestamp(doc.UploadedAt); ok {
				if !anyUploaded || at.Before(earliestUpload) {
					earliestUpload = at
				}
				if at.After(latestUpload) {
					latestUpload = at
				}
				anyUploaded = true
			}
		}
		if doc.Status == freight.DocStatusVerified {
			anyVerified = true
			if at, ok := ParseTimestamp(doc.VerifiedAt); ok && at.After(latestVerify) {
				latestVerify = at
			}
		}
	}

	if anyUploaded {
		entries = append(entries, TimelineEntry{Label: "Documents uploaded", At: earliestUpload, Complete: true})
	}
	if anyUploaded && !anyVerified {
		entries = append(entries, TimelineEntry{Label: "Validation in progress", At: latestUpload})
	}
	if anyVerified && !latestVerify.IsZero() {
		entries = append(entries, TimelineEntry{Label: "Documents verified", At: latestVerify, Complete: true})
	}

	for _, approval := range approvals {
		at, ok := ParseTimestamp(approval.DecidedAt)
		if !ok {
			at, ok = ParseTimestamp(approval.CreatedAt)
		}
		if !ok {
			continue
		}
		entries = append(entries, TimelineEntry{
			Label:    humanizeEnum(approval.Kind) + " " + strings.ToLower(humanizeEnum(approval.Status)),
			At:       at,
			Complete: approval.Status != freight.ApprovalStatusPending,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})
	return entries
}

// EventTimeline maps backend events into timeline entries, dropping events
// whose timestamps do not parse. Preferred over DeriveTimeline whenever the
// backend supplies any discrete events.
func EventTimeline(events []freight.Event) []TimelineEntry {
	var entries []TimelineEntry
	for _, ev := range events {
		at, ok := ParseTimestamp(ev.EventTime)
		if !ok {
			continue
		}
		label := humanizeEnum(ev.EventType)
		if ev.Location != "" {
			label += " at " + ev.Location
		}
		entries = append(entries, TimelineEntry{Label: label, At: at, Complete: true})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})
	return entries
}
