package shipments

import "strings"

// ActionLabel is the display form of a next_required_action value. Raw is
// always the backend enum verbatim so the mapping is never lossy.
type ActionLabel struct {
	Raw      string
	Title    string
	Subtitle string
}

// knownActions maps backend action enums to curated copy. Values missing
// here fall back to a generic formatter, so the set only needs to cover
// actions worth a better explanation than their own name.
var knownActions = map[string]ActionLabel{
	"CLIENT_UPLOAD_REQUIRED_DOCUMENTS": {
		Title:    "Upload required documents",
		Subtitle: "One or more required documents are still missing for this shipment.",
	},
	"CLIENT_APPROVE_DECLARATION_DRAFT": {
		Title:    "Review declaration draft",
		Subtitle: "A customs declaration draft is waiting for your approval.",
	},
	"CLIENT_APPROVE_ASSESSMENT": {
		Title:    "Review assessment",
		Subtitle: "An assessment notice is waiting for your approval.",
	},
	"OPS_VERIFY_DOCUMENTS": {
		Title:    "Documents under review",
		Subtitle: "Our operations team is verifying your uploaded documents.",
	},
	"OPS_SUBMIT_DECLARATION": {
		Title:    "Declaration in progress",
		Subtitle: "Our operations team is submitting the customs declaration.",
	},
	"OPS_INSERT_PORT_OFFLOADED": {
		Title:    "Awaiting port offloading",
		Subtitle: "Waiting for the port to confirm the cargo has been offloaded.",
	},
	"COMPLETE": {
		Title:    "Complete",
		Subtitle: "No further action is required for this shipment.",
	},
}

// FormatNextAction maps a raw next_required_action enum to display copy.
// Unknown values get a generic label: one leading CLIENT_/OPS_ prefix is
// stripped, underscores become spaces, and only the first letter stays
// capitalized.
func FormatNextAction(raw string) ActionLabel {
	if label, ok := knownActions[raw]; ok {
		label.Raw = raw
		return label
	}
	return ActionLabel{Raw: raw, Title: humanizeEnum(stripActorPrefix(raw))}
}

func stripActorPrefix(raw string) string {
	if rest, ok := strings.CutPrefix(raw, "CLIENT_"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(raw, "OPS_"); ok {
		return rest
	}
	return raw
}

// humanizeEnum turns SOME_ENUM_VALUE into "Some enum value".
func humanizeEnum(raw string) string {
	s := strings.ToLower(strings.ReplaceAll(raw, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
