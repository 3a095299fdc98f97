package core

// EventType represents the type of change observed on the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the persisted store.
type Event struct {
	Type      EventType
	ID        string // name of the changed file
	Timestamp int64  // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
