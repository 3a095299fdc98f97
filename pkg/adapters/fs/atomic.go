package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = ".bptrack-tmp-"

	defaultFileMode os.FileMode = 0644
)

// writeFileAtomic replaces filename with data through a synced temp file in
// the same directory. An existing file keeps its permission bits; a new one
// gets defaultFileMode.
func writeFileAtomic(filename string, data []byte) error {
	mode := defaultFileMode
	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// fileSnapshot is the content of the store file before a versioned write.
type fileSnapshot struct {
	existed bool
	data    []byte
}

func snapshot(filename string) (*fileSnapshot, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return &fileSnapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &fileSnapshot{existed: true, data: data}, nil
}

// restore writes the snapshot back, removing the file if it did not exist.
func (s *fileSnapshot) restore(filename string) error {
	if s.existed {
		return writeFileAtomic(filename, s.data)
	}
	if err := os.Remove(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
