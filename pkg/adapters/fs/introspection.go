package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Versioned     bool       `json:"versioned"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	LastLoad      *time.Time `json:"last_load,omitempty"`
	LoadedCount   int        `json:"loaded_count"`
	LoadFallback  string     `json:"load_fallback,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := RepositoryState{
		Path:          r.Path,
		Versioned:     r.config.Versioned,
		ReadOnly:      r.config.ReadOnly,
		WatcherActive: r.watcherActive,
	}
	if r.lastLoad != nil {
		at := r.lastLoad.At
		st.LastLoad = &at
		st.LoadedCount = r.lastLoad.Count
		st.LoadFallback = r.lastLoad.Reason
	}
	return st
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordLoad(count int, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLoad = &loadOutcome{At: time.Now(), Count: count, Reason: reason}
}
