package bptrack

import (
	"log/slog"
	"time"

	"github.com/aretw0/bptrack/internal/platform"
	"github.com/aretw0/bptrack/pkg/core"
)

// --- Types ---

// Reading is a public alias for a stored blood-pressure reading.
type Reading = core.Reading

// NewReading is a public alias for the input of Service.Add.
type NewReading = core.NewReading

// Statistics is a public alias for the aggregate over all readings.
type Statistics = core.Statistics

// Service is a public alias for the reading service.
type Service = core.Service

// Config is the resolved on-disk configuration (.bptrack.yaml).
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring bptrack.
type Option = platform.Option

// WithAutoInit creates the store directory (and git repository when versioning) if missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables committing the store file to git.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the store without allowing writes.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithWatchPattern sets the glob used to filter watch events.
func WithWatchPattern(pattern string) Option {
	return platform.WithWatchPattern(pattern)
}

// WithWatcherErrorHandler registers a callback for watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock overrides the clock used for default timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// --- Factory ---

// New opens the store at path and returns a loaded Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Config ---

// FindConfig looks upwards from startDir for a .bptrack.yaml file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// ResolveConfig discovers the configuration for startDir, applying the
// BPTRACK_FILE environment override.
func ResolveConfig(startDir string) (Config, error) {
	return platform.ResolveConfig(startDir)
}

// FormatReading renders a reading as a single display line.
func FormatReading(r Reading) string {
	return core.FormatReading(r)
}

// ParseLevel maps a configured log level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	return platform.ParseLevel(s)
}
