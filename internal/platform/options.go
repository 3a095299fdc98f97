package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/bptrack/pkg/core"
)

// options holds the internal configuration for the bptrack service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	clock      func() time.Time
	config     map[string]interface{}
}

// Option defines a functional option for configuring bptrack.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		repository: nil,
		logger:     nil,
		adapter:    "fs",
		config:     make(map[string]interface{}),
	}
}

// WithAutoInit creates the store directory (and git repository when
// versioning) if missing. Enabled by default.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithVersioning enables or disables committing the store file to git after
// every change. Disabled by default.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioned"] = enabled
	}
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Save returns core.ErrReadOnly, so Add and Delete fail.
// 2. Initialization (Mkdir, Git Init) is skipped.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithWatchPattern sets the doublestar glob used by Watch.
func WithWatchPattern(pattern string) Option {
	return func(o *options) {
		o.config["watch_pattern"] = pattern
	}
}

// WithWatcherErrorHandler registers a callback for errors raised by the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the clock used for default reading timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name.
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}
