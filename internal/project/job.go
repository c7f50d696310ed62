package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/binpack2d/internal/model"
)

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SaveJob writes a job to path. Files ending in .yaml or .yml are written as
// YAML, anything else as indented JSON.
func SaveJob(path string, job model.Job) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(job)
	} else {
		data, err = json.MarshalIndent(job, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}

// LoadJob reads a job from path. Settings missing from the file take their
// DefaultSettings values, items and bins without an ID get a fresh one, a
// missing quantity means 1, and the resulting settings are validated.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	job := model.NewJob()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &job)
	} else {
		err = json.Unmarshal(data, &job)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}

	for i := range job.Items {
		it := &job.Items[i]
		if it.ID == "" {
			it.ID = model.NewItem("", 0, 0, 0).ID
		}
		if it.Quantity == 0 {
			it.Quantity = 1
		}
	}
	for i := range job.Bins {
		b := &job.Bins[i]
		if b.ID == "" {
			b.ID = model.NewBin("", 0, 0, 0).ID
		}
		if b.Quantity == 0 {
			b.Quantity = 1
		}
	}

	if err := job.Settings.Validate(); err != nil {
		return model.Job{}, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return job, nil
}
