// Package git versions the store file by shelling out to the git binary.
package git

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLockTimeout bounds how long Lock waits for another process.
const DefaultLockTimeout = 10 * time.Second

// Client runs git commands in a working directory. Mutating sequences are
// serialized across processes with a lock file.
type Client struct {
	WorkDir     string
	Logger      *slog.Logger
	LockTimeout time.Duration
	lockName    string
}

// NewClient creates a new git client for the given working directory.
// lockName is the lock file created inside workDir.
func NewClient(workDir, lockName string, logger *slog.Logger) *Client {
	if lockName == "" {
		lockName = ".bptrack.lock"
	}
	return &Client{
		WorkDir:     workDir,
		Logger:      logger,
		LockTimeout: DefaultLockTimeout,
		lockName:    lockName,
	}
}

// IsInstalled reports whether git is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether WorkDir is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Lock acquires the lock file, polling until it is free or LockTimeout elapses.
func (c *Client) Lock() (func(), error) {
	path := filepath.Join(c.WorkDir, c.lockName)
	deadline := time.Now().Add(c.LockTimeout)

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() { os.Remove(path) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for lock %s", path)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Run executes a raw git command in the working directory.
// It does NOT take the lock; callers wrap mutating sequences with Lock.
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}
	return strings.TrimSpace(output), nil
}

// Init initializes a new git repository.
func (c *Client) Init() error {
	_, err := c.Run("init")
	return err
}

// Add stages files.
func (c *Client) Add(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := c.Run(append([]string{"add"}, files...)...)
	return err
}

// Commit records staged changes. A commit with nothing staged is not an error.
func (c *Client) Commit(msg string) error {
	if out, _ := c.Run("diff", "--cached", "--name-only"); out == "" {
		return nil
	}
	_, err := c.Run("commit", "-m", msg)
	return err
}

// Subjects returns commit subjects, newest first.
func (c *Client) Subjects() ([]string, error) {
	out, err := c.Run("log", "--format=%s")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
