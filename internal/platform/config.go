package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/bptrack/pkg/adapters/fs"
)

// EnvDataFile overrides the store path from the environment.
const EnvDataFile = "BPTRACK_FILE"

// Config is the on-disk configuration (.bptrack.yaml).
//
//	data_file: readings/bp_data.json
//	versioning: true
//	log_level: debug
type Config struct {
	DataFile   string `yaml:"data_file"`
	Versioning bool   `yaml:"versioning"`
	LogLevel   string `yaml:"log_level"`

	// Source is the file the config was read from; empty for defaults.
	Source string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{DataFile: fs.DefaultFilename, LogLevel: "info"}
}

// LoadConfig reads a configuration file. A relative data_file is resolved
// against the directory holding the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.DataFile == "" {
		cfg.DataFile = fs.DefaultFilename
	}
	if !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(filepath.Dir(path), cfg.DataFile)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Source = path
	return cfg, nil
}

// ResolveConfig discovers the configuration for startDir and applies the
// environment override. Without a config file the store is bp_data.json in
// startDir.
func ResolveConfig(startDir string) (Config, error) {
	cfg := DefaultConfig()

	path, err := FindConfig(startDir)
	switch {
	case err == nil:
		cfg, err = LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	case errors.Is(err, ErrNoConfig):
		cfg.DataFile = filepath.Join(startDir, fs.DefaultFilename)
	default:
		return cfg, err
	}

	if env := strings.TrimSpace(os.Getenv(EnvDataFile)); env != "" {
		cfg.DataFile = env
	}
	return cfg, nil
}

// ParseLevel maps a config level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
