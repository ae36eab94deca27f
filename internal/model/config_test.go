package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "schedules", cfg.Storage.Key)
	assert.Equal(t, DefaultColor, cfg.Display.DefaultColor)
	assert.True(t, cfg.Display.ShowCompleted)
	assert.Equal(t, "auto", cfg.Display.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `data_dir: /srv/schedule
storage:
  key: jadwal
display:
  show_completed: false
  default_color: "#112233"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/schedule", cfg.DataDir)
	assert.Equal(t, "jadwal", cfg.Storage.Key)
	assert.False(t, cfg.Display.ShowCompleted)
	assert.Equal(t, "#112233", cfg.Display.DefaultColor)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join("/srv/schedule", "schedule.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join("/srv/schedule", "schedule.log"), cfg.LogPath())
}

func TestLoadConfigRejectsBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  default_color: teal\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "default_color")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [unclosed\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := defaultAppConfig()
	want.DataDir = "/tmp/schedule"
	want.Display.Theme = "dark"
	want.Log.File = "/tmp/schedule.log"

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
