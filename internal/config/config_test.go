package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8374", cfg.Listen)
	assert.Equal(t, "user_data.csv", cfg.Tables.Users)
	assert.Equal(t, "tasks_data.csv", cfg.Tables.Tasks)
	assert.Equal(t, "completed_tasks.csv", cfg.Tables.Completed)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "listen: \":9000\"\ndata_dir: /srv/focustrack\ntables:\n  users: accounts.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "/srv/focustrack", cfg.DataDir)
	assert.Equal(t, "accounts.csv", cfg.Tables.Users)
	// Untouched keys keep their defaults.
	assert.Equal(t, "tasks_data.csv", cfg.Tables.Tasks)
}

func TestTablePaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/srv/data"

	assert.Equal(t, filepath.Join("/srv/data", "user_data.csv"), cfg.UsersPath())
	assert.Equal(t, filepath.Join("/srv/data", "tasks_data.csv"), cfg.TasksPath())
	assert.Equal(t, filepath.Join("/srv/data", "completed_tasks.csv"), cfg.CompletedPath())
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: :1\n"), 0o644))

	err := WriteDefault(path)
	assert.Error(t, err)
}
