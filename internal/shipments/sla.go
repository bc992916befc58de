package shipments

import (
	"fmt"
	"math"
	"time"
)

// SLA hint tones.
const (
	ToneOK   = "ok"
	ToneRisk = "risk"
)

// riskWindow is the forward-looking window in which an upcoming ETA is
// flagged as at risk.
const riskWindow = 24 * time.Hour

// SLAHint is the arrival hint rendered next to a shipment's ETA.
type SLAHint struct {
	Label  string
	Detail string
	Tone   string
}

// SLAFor computes the arrival hint for an ETA relative to now. It returns
// nil when the ETA is absent or unparseable. Only an ETA within the next 24
// hours is "At Risk"; an ETA already in the past is not newly at risk.
func SLAFor(eta string, now time.Time) *SLAHint {
	at, ok := ParseTimestamp(eta)
	if !ok {
		return nil
	}
	remaining := at.Sub(now)

	hint := &SLAHint{Label: "On Track", Tone: ToneOK}
	if remaining > 0 && remaining <= riskWindow {
		hint.Label = "At Risk"
		hint.Tone = ToneRisk
	}

	if remaining >= 0 {
		hint.Detail = durationText(remaining) + " remaining"
	} else {
		hint.Detail = durationText(-remaining) + " overdue"
	}
	return hint
}

// durationText renders a duration as whole days when it spans two or more,
// otherwise as rounded hours.
func durationText(d time.Duration) string {
	if d >= 48*time.Hour {
		return fmt.Sprintf("%d days", int(d.Hours())/24)
	}
	hours := int(math.Round(d.Hours()))
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
