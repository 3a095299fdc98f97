package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFilename is the per-directory configuration file.
const ConfigFilename = ".bptrack.yaml"

// ErrNoConfig is returned by FindConfig when no configuration file exists
// in startDir or any of its parents.
var ErrNoConfig = fmt.Errorf("%s not found", ConfigFilename)

// FindConfig recursively looks upwards for a configuration file.
// If found, returns the absolute path to it.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ConfigFilename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrNoConfig
}
