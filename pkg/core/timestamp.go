package core

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout used for generated timestamps.
// It sorts lexicographically in chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DisplayLayout is the layout used when printing a reading.
const DisplayLayout = "2006-01-02 15:04:05"

// Accepted ISO-8601 shapes. Fractional seconds are accepted by time.Parse
// after the seconds field even when the layout omits them.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 date or date-time string.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}
