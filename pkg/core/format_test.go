package core_test

import (
	"testing"

	"github.com/aretw0/bptrack/pkg/core"
)

func TestFormatReading(t *testing.T) {
	tests := []struct {
		name string
		in   core.Reading
		want string
	}{
		{
			name: "Basic",
			in:   core.Reading{ID: 1, Systolic: 120, Diastolic: 80, Timestamp: "2024-01-15T10:30:00"},
			want: "ID: 1 | 2024-01-15 10:30:00 | 120/80 mmHg",
		},
		{
			name: "With Pulse",
			in:   core.Reading{ID: 2, Systolic: 120, Diastolic: 80, Pulse: core.IntPtr(72), Timestamp: "2024-01-15T10:30:00.123456"},
			want: "ID: 2 | 2024-01-15 10:30:00 | 120/80 mmHg | Pulse: 72 bpm",
		},
		{
			name: "With Notes",
			in:   core.Reading{ID: 3, Systolic: 135, Diastolic: 88, Notes: "After coffee", Timestamp: "2024-01-15"},
			want: "ID: 3 | 2024-01-15 00:00:00 | 135/88 mmHg | Notes: After coffee",
		},
		{
			name: "All Fields",
			in:   core.Reading{ID: 4, Systolic: 118, Diastolic: 76, Pulse: core.IntPtr(65), Notes: "Morning", Timestamp: "2024-01-15T06:05:09+02:00"},
			want: "ID: 4 | 2024-01-15 06:05:09 | 118/76 mmHg | Pulse: 65 bpm | Notes: Morning",
		},
		{
			name: "Unparseable Timestamp",
			in:   core.Reading{ID: 5, Systolic: 120, Diastolic: 80, Timestamp: "last tuesday"},
			want: "ID: 5 | last tuesday | 120/80 mmHg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.FormatReading(tt.in); got != tt.want {
				t.Errorf("FormatReading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	valid := []string{
		"2024-01-01",
		"2024-01-01T08:00",
		"2024-01-01T08:00:00",
		"2024-01-01T08:00:00.123456",
		"2024-01-01 08:00:00",
		"2024-01-01T08:00:00Z",
		"2024-01-01T08:00:00.5-05:00",
	}
	for _, s := range valid {
		if _, err := core.ParseTimestamp(s); err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", s, err)
		}
	}

	invalid := []string{"", "tomorrow", "2024-13-01", "01/02/2024"}
	for _, s := range invalid {
		if _, err := core.ParseTimestamp(s); err == nil {
			t.Errorf("ParseTimestamp(%q) expected error", s)
		}
	}
}
