package core

import "context"

// Repository defines the contract for loading and persisting the reading
// collection. The whole collection travels on every call: the store is
// rewritten in full after each mutation.
type Repository interface {
	// Load returns the persisted collection in insertion order.
	Load(ctx context.Context) ([]Reading, error)

	// Save replaces the persisted collection with readings.
	Save(ctx context.Context, readings []Reading) error

	// Initialize ensures the underlying storage is ready (e.g., create directories, git init).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by repositories that can report external changes.
type Watchable interface {
	// Watch emits an Event each time the persisted store changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change description (commit message) during Save.
const ChangeReasonKey contextKey = "change_reason"
