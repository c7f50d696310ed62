package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/binpack2d/internal/model"
)

// MaxRecentJobs caps AppConfig.RecentJobs.
const MaxRecentJobs = 10

// DefaultConfigPath returns ~/.binpack2d/config.json, or a path relative to
// the working directory when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".binpack2d", "config.json")
}

// SaveAppConfig writes config as indented JSON. The file is replaced through
// a temporary sibling so a failed write never leaves half a config behind.
func SaveAppConfig(path string, config model.AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// LoadAppConfig reads the config at path. A missing file yields
// DefaultAppConfig; fields absent from the file keep their defaults. Unknown
// algorithm, sort or search names are rejected, and the recent job list is
// cut to MaxRecentJobs.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)
	if err := settings.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid defaults in %s: %w", path, err)
	}

	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	if len(config.RecentJobs) > MaxRecentJobs {
		config.RecentJobs = config.RecentJobs[:MaxRecentJobs]
	}
	return config, nil
}
