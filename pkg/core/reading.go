package core

// Reading is one recorded blood-pressure measurement.
// Field order matches the layout of the persisted JSON objects.
type Reading struct {
	ID        int    `json:"id"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Timestamp string `json:"timestamp"`
	Pulse     *int   `json:"pulse,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// NewReading holds the caller-supplied values for Service.Add.
// Zero Timestamp means "now".
type NewReading struct {
	Systolic  int
	Diastolic int
	Pulse     *int
	Notes     string
	Timestamp string
}

// Statistics summarizes the whole collection.
type Statistics struct {
	Count        int     `json:"count"`
	AvgSystolic  float64 `json:"avg_systolic"`
	AvgDiastolic float64 `json:"avg_diastolic"`
	MinSystolic  int     `json:"min_systolic"`
	MaxSystolic  int     `json:"max_systolic"`
	MinDiastolic int     `json:"min_diastolic"`
	MaxDiastolic int     `json:"max_diastolic"`
}

// Valid ranges, inclusive.
const (
	MinSystolic  = 1
	MaxSystolic  = 300
	MinDiastolic = 1
	MaxDiastolic = 200
	MinPulse     = 1
	MaxPulse     = 300
)

// IntPtr returns a pointer to v. Handy for the optional Pulse field.
func IntPtr(v int) *int {
	return &v
}
