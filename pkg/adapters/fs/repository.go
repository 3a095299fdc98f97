package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/bptrack/pkg/core"
	"github.com/aretw0/bptrack/pkg/git"
)

// DefaultFilename is the store file used when no path is configured.
const DefaultFilename = "bp_data.json"

// Repository implements core.Repository on top of a single JSON file
// holding an array of readings.
type Repository struct {
	Path   string // absolute or working-directory relative path of the store file
	git    *git.Client
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *loadOutcome
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	AutoInit  bool // create the parent directory (and git repo when versioned)
	Versioned bool // commit the store file to git after every save
	MustExist bool // fail Initialize when the parent directory is missing
	ReadOnly  bool
	Logger    *slog.Logger
	// WatchPattern is a doublestar glob matched against file names in the
	// store directory. Defaults to the store file name.
	WatchPattern string
	// ErrorHandler receives runtime errors of the watch loop.
	ErrorHandler func(error)
}

type loadOutcome struct {
	At     time.Time
	Count  int
	Reason string // empty on a clean load
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Path == "" {
		config.Path = DefaultFilename
	}
	dir := filepath.Dir(config.Path)
	return &Repository{
		Path:   config.Path,
		git:    git.NewClient(dir, ".bptrack.lock", config.Logger),
		config: config,
	}
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	dir := filepath.Dir(r.Path)

	if r.config.ReadOnly {
		return nil
	}

	// 1. Directory Initialization
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("store directory is not a directory: %s", dir)
	case os.IsNotExist(err) && (r.config.MustExist || !r.config.AutoInit):
		return fmt.Errorf("store directory does not exist: %s", dir)
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to stat store directory: %w", err)
	}

	// 2. Git Initialization
	if !r.config.Versioned {
		return nil
	}
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if r.git.IsRepo() {
		return nil
	}
	if !r.config.AutoInit {
		return fmt.Errorf("store directory is not a git repository: %s", dir)
	}
	if err := r.git.Init(); err != nil {
		return fmt.Errorf("failed to git init: %w", err)
	}
	if r.config.Logger != nil {
		r.config.Logger.Info("initialized git repository", "dir", dir)
	}
	return nil
}

// Load reads the store file.
//
// A missing file, an unreadable file or content that is not a JSON array of
// readings all yield an empty collection. Load never fails.
func (r *Repository) Load(ctx context.Context) ([]core.Reading, error) {
	readings, reason := r.read()
	r.recordLoad(len(readings), reason)

	if reason != "" && r.config.Logger != nil {
		r.config.Logger.Warn("treating store as empty", "path", r.Path, "reason", reason)
	}
	return readings, nil
}

func (r *Repository) read() ([]core.Reading, string) {
	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		return []core.Reading{}, ""
	}
	if err != nil {
		return []core.Reading{}, err.Error()
	}

	var readings []core.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return []core.Reading{}, fmt.Sprintf("invalid json: %v", err)
	}
	if readings == nil {
		// "null" decodes without error.
		readings = []core.Reading{}
	}
	return readings, ""
}

// Save rewrites the store file with readings as a pretty-printed JSON array.
//
// Workflow:
//  1. Refuse in read-only mode.
//  2. Encode with two-space indentation and write atomically.
//  3. (If versioned) 'git add' and 'git commit' with the change reason from ctx.
//     When git fails the previous file content is put back, so a failed Save
//     leaves neither the file nor the index changed.
func (r *Repository) Save(ctx context.Context, readings []core.Reading) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	data, err := encode(readings)
	if err != nil {
		return fmt.Errorf("failed to encode readings: %w", err)
	}

	if !r.config.Versioned {
		if err := writeFileAtomic(r.Path, data); err != nil {
			return fmt.Errorf("failed to write store: %w", err)
		}
		r.logWritten(len(readings))
		return nil
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	prev, err := snapshot(r.Path)
	if err != nil {
		return fmt.Errorf("failed to read store before write: %w", err)
	}

	if err := writeFileAtomic(r.Path, data); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	r.logWritten(len(readings))

	if err := r.commit(ctx); err != nil {
		if rbErr := r.rollback(prev); rbErr != nil && r.config.Logger != nil {
			r.config.Logger.Error("failed to restore store after git error", "path", r.Path, "error", rbErr)
		}
		return err
	}
	return nil
}

func (r *Repository) commit(ctx context.Context) error {
	filename := filepath.Base(r.Path)
	if err := r.git.Add(filename); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	msg := "update " + filename
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}

	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// rollback puts the store file and its index entry back to prev.
func (r *Repository) rollback(prev *fileSnapshot) error {
	filename := filepath.Base(r.Path)
	if err := prev.restore(r.Path); err != nil {
		return err
	}
	if prev.existed {
		return r.git.Add(filename)
	}
	_, err := r.git.Run("rm", "--cached", "--quiet", "--ignore-unmatch", "--", filename)
	return err
}

func (r *Repository) logWritten(count int) {
	if r.config.Logger != nil {
		r.config.Logger.Debug("store written", "path", r.Path, "count", count)
	}
}

func encode(readings []core.Reading) ([]byte, error) {
	if readings == nil {
		readings = []core.Reading{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(readings); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
