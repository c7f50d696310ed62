package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/binpack2d/internal/model"
)

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")

	item := model.NewItem("Door", 600, 400, 1)
	result := model.Result{
		Bins: []model.BinResult{{
			BinID:      0,
			Bin:        model.NewBin("Sheet", 2440, 1220, 1),
			Placements: []model.PlacedItem{{Item: item, X: 0, Y: 0, Rotated: true}},
		}},
		Unplaced: []model.Item{model.NewItem("Huge", 5000, 5000, 1)},
	}
	settings := model.DefaultSettings()
	settings.AllowRotate = true

	require.NoError(t, SaveResult(path, "Kitchen", settings, result))

	snapshot, err := LoadResult(path)
	require.NoError(t, err)

	assert.Equal(t, SnapshotVersion, snapshot.Version)
	assert.Equal(t, "Kitchen", snapshot.Job)
	assert.Equal(t, settings, snapshot.Settings)
	assert.Equal(t, result, snapshot.Result)

	created, err := time.Parse(time.RFC3339, snapshot.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
}

func TestLoadResult_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"result": {"bins": []}}`), 0644))

	_, err := LoadResult(path)
	assert.Error(t, err)
}

func TestLoadResult_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadResult(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))
	_, err = LoadResult(bad)
	assert.Error(t, err)
}
