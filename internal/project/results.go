package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/binpack2d/internal/model"
)

// SnapshotVersion is written into every saved result.
const SnapshotVersion = "1.0.0"

// ResultSnapshot is the on-disk form of a packing run.
type ResultSnapshot struct {
	Version   string         `json:"version"`
	CreatedAt string         `json:"created_at"`
	Job       string         `json:"job,omitempty"`
	Settings  model.Settings `json:"settings"`
	Result    model.Result   `json:"result"`
}

// SaveResult writes the result together with the settings that produced it.
func SaveResult(path, jobName string, settings model.Settings, result model.Result) error {
	snapshot := ResultSnapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Job:       jobName,
		Settings:  settings,
		Result:    result,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// LoadResult reads a snapshot written by SaveResult.
func LoadResult(path string) (ResultSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultSnapshot{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var snapshot ResultSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return ResultSnapshot{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	if snapshot.Version == "" {
		return ResultSnapshot{}, fmt.Errorf("invalid result file: missing version field")
	}
	return snapshot, nil
}
