package core

import (
	"fmt"
	"strings"
)

// FormatReading renders a reading as a single display line:
//
//	ID: 3 | 2024-01-03 08:15:00 | 120/80 mmHg | Pulse: 72 bpm | Notes: Morning
//
// A timestamp that does not parse is printed as stored.
func FormatReading(r Reading) string {
	ts := r.Timestamp
	if t, err := ParseTimestamp(r.Timestamp); err == nil {
		ts = t.Format(DisplayLayout)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d | %s | %d/%d mmHg", r.ID, ts, r.Systolic, r.Diastolic)
	if r.Pulse != nil {
		fmt.Fprintf(&b, " | Pulse: %d bpm", *r.Pulse)
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, " | Notes: %s", r.Notes)
	}
	return b.String()
}
