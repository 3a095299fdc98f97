package fs_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bptrack/pkg/adapters/fs"
	"github.com/aretw0/bptrack/pkg/core"
	"github.com/aretw0/bptrack/pkg/git"
)

// setupRepo creates an initialized repository whose store file lives in a temp dir.
func setupRepo(t *testing.T, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	cfg := fs.Config{
		Path:     filepath.Join(t.TempDir(), "bp_data.json"),
		AutoInit: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	require.NoError(t, repo.Initialize(context.Background()))
	return repo, cfg.Path
}

func sample() []core.Reading {
	return []core.Reading{
		{ID: 1, Systolic: 120, Diastolic: 80, Timestamp: "2024-01-01T08:00:00"},
		{ID: 2, Systolic: 130, Diastolic: 85, Timestamp: "2024-01-02T08:00:00", Pulse: core.IntPtr(70), Notes: "After walk"},
	}
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "bp_data.json")
		repo := fs.NewRepository(fs.Config{Path: path, AutoInit: true})

		require.NoError(t, repo.Initialize(context.Background()))
		assert.DirExists(t, filepath.Dir(path))
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "bp_data.json")
		repo := fs.NewRepository(fs.Config{Path: path, AutoInit: true, MustExist: true})

		assert.Error(t, repo.Initialize(context.Background()))
	})

	t.Run("Fails Without AutoInit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "bp_data.json")
		repo := fs.NewRepository(fs.Config{Path: path})

		assert.Error(t, repo.Initialize(context.Background()))
	})

	t.Run("Read Only Skips Setup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "bp_data.json")
		repo := fs.NewRepository(fs.Config{Path: path, AutoInit: true, ReadOnly: true})

		require.NoError(t, repo.Initialize(context.Background()))
		assert.NoDirExists(t, filepath.Dir(path))
	})

	t.Run("Default Path", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{})
		assert.Equal(t, fs.DefaultFilename, repo.Path)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing File Is Empty", func(t *testing.T) {
		repo, _ := setupRepo(t)

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	cases := map[string]string{
		"Invalid JSON": "this is not json{",
		"Object":       `{"id": 1}`,
		"Wrong Types":  `[{"id": "one", "systolic": "high"}]`,
		"Empty File":   "",
		"Truncated":    `[{"id": 1, "systolic": 120`,
	}
	for name, content := range cases {
		t.Run(name+" Is Empty", func(t *testing.T) {
			repo, path := setupRepo(t)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			state := repo.State().(fs.RepositoryState)
			assert.NotEmpty(t, state.LoadFallback)
		})
	}

	t.Run("Null Is Empty", func(t *testing.T) {
		repo, path := setupRepo(t)
		require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Reads Existing File", func(t *testing.T) {
		repo, path := setupRepo(t)
		raw := `[
  {"id": 1, "systolic": 118, "diastolic": 76, "timestamp": "2024-03-01T09:00:00"},
  {"id": 2, "systolic": 121, "diastolic": 79, "timestamp": "2024-03-02T09:00:00", "pulse": 64, "notes": "Calm"}
]`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 118, got[0].Systolic)
		assert.Nil(t, got[0].Pulse)
		require.NotNil(t, got[1].Pulse)
		assert.Equal(t, 64, *got[1].Pulse)
		assert.Equal(t, "Calm", got[1].Notes)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		repo, _ := setupRepo(t)
		require.NoError(t, repo.Save(ctx, sample()))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sample(), got)
	})

	t.Run("Pretty Printed Array", func(t *testing.T) {
		repo, path := setupRepo(t)
		require.NoError(t, repo.Save(ctx, sample()[:1]))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		want := `[
  {
    "id": 1,
    "systolic": 120,
    "diastolic": 80,
    "timestamp": "2024-01-01T08:00:00"
  }
]`
		assert.Equal(t, want, string(data))
	})

	t.Run("Optional Fields Omitted", func(t *testing.T) {
		repo, path := setupRepo(t)
		require.NoError(t, repo.Save(ctx, sample()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw []map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw, 2)
		assert.NotContains(t, raw[0], "pulse")
		assert.NotContains(t, raw[0], "notes")
		assert.Contains(t, raw[1], "pulse")
		assert.Contains(t, raw[1], "notes")
	})

	t.Run("Notes Kept As Typed", func(t *testing.T) {
		repo, path := setupRepo(t)
		in := []core.Reading{{ID: 1, Systolic: 120, Diastolic: 80, Timestamp: "2024-01-01T08:00:00", Notes: "café <home>"}}
		require.NoError(t, repo.Save(ctx, in))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"notes": "café <home>"`)

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("Empty Collection", func(t *testing.T) {
		repo, path := setupRepo(t)
		require.NoError(t, repo.Save(ctx, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("Reopen Sees Same Values", func(t *testing.T) {
		repo, path := setupRepo(t)
		require.NoError(t, repo.Save(ctx, sample()[:1]))

		reopened := fs.NewRepository(fs.Config{Path: path, AutoInit: true})
		require.NoError(t, reopened.Initialize(ctx))
		got, err := reopened.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, sample()[0], got[0])
	})
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	_, path := setupRepo(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "systolic": 120, "diastolic": 80, "timestamp": "2024-01-01"}]`), 0644))

	repo := fs.NewRepository(fs.Config{Path: path, ReadOnly: true})
	require.NoError(t, repo.Initialize(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	err = repo.Save(ctx, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrReadOnly), "Expected ErrReadOnly, got: %v", err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"systolic": 120`, "file must be untouched")
}

func TestVersioning(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}
	ctx := context.Background()

	repo, path := setupRepo(t, func(c *fs.Config) { c.Versioned = true })
	dir := filepath.Dir(path)
	assert.DirExists(t, filepath.Join(dir, ".git"))

	for _, kv := range [][2]string{{"user.name", "Test"}, {"user.email", "test@example.com"}} {
		cmd := exec.Command("git", "config", kv[0], kv[1])
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	require.NoError(t, repo.Save(context.WithValue(ctx, core.ChangeReasonKey, "add reading 1"), sample()[:1]))
	require.NoError(t, repo.Save(ctx, sample()))

	subjects, err := git.NewClient(dir, "", nil).Subjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"update bp_data.json", "add reading 1"}, subjects)
	assert.NoFileExists(t, filepath.Join(dir, ".bptrack.lock"))
}

// setupVersionedRepo returns a versioned repository whose git directory has a
// committer identity configured.
func setupVersionedRepo(t *testing.T) (*fs.Repository, string) {
	t.Helper()
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}

	repo, path := setupRepo(t, func(c *fs.Config) { c.Versioned = true })
	dir := filepath.Dir(path)
	for _, kv := range [][2]string{{"user.name", "Test"}, {"user.email", "test@example.com"}} {
		cmd := exec.Command("git", "config", kv[0], kv[1])
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	return repo, path
}

// rejectCommits installs a pre-commit hook that fails every commit.
func rejectCommits(t *testing.T, dir string) {
	t.Helper()
	hook := filepath.Join(dir, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hook), 0755))
	require.NoError(t, os.WriteFile(hook, []byte("#!/bin/sh\nexit 1\n"), 0755))
}

func TestVersioning_CommitFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Restores Previous Content", func(t *testing.T) {
		repo, path := setupVersionedRepo(t)
		dir := filepath.Dir(path)
		require.NoError(t, repo.Save(ctx, sample()[:1]))
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		rejectCommits(t, dir)
		err = repo.Save(ctx, sample())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git commit")

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		client := git.NewClient(dir, "", nil)
		staged, err := client.Run("diff", "--cached", "--name-only")
		require.NoError(t, err)
		assert.Empty(t, staged, "index must match the restored file")
		assert.NoFileExists(t, filepath.Join(dir, ".bptrack.lock"))
	})

	t.Run("Removes File Created By Failed Save", func(t *testing.T) {
		repo, path := setupVersionedRepo(t)
		dir := filepath.Dir(path)
		rejectCommits(t, dir)

		require.Error(t, repo.Save(ctx, sample()))
		assert.NoFileExists(t, path)

		staged, err := git.NewClient(dir, "", nil).Run("diff", "--cached", "--name-only")
		require.NoError(t, err)
		assert.Empty(t, staged)
	})
}

func TestState(t *testing.T) {
	repo, path := setupRepo(t)
	require.NoError(t, repo.Save(context.Background(), sample()))
	_, err := repo.Load(context.Background())
	require.NoError(t, err)

	state, ok := repo.State().(fs.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, path, state.Path)
	assert.Equal(t, 2, state.LoadedCount)
	assert.Empty(t, state.LoadFallback)
	require.NotNil(t, state.LastLoad)
	assert.WithinDuration(t, time.Now(), *state.LastLoad, time.Minute)
	assert.Equal(t, "repository", repo.ComponentType())
}
