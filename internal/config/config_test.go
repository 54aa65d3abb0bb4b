package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.Output)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &Config{
		Site:        "mangafox",
		Title:       "Naruto",
		Output:      "/tmp/manga",
		Concurrency: 8,
		Cookie:      "k=v",
	}
	require.NoError(t, SaveYAML(in, path))

	out, err := loadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMergeFlagsWinOverConfig(t *testing.T) {
	cfg := &Config{
		Site:        "mangafox",
		Title:       "Naruto",
		Output:      "/from/config",
		Concurrency: 2,
	}

	mergeConfig(cfg, Options{
		Site:        "mangahere",
		Concurrency: 6,
		Debug:       true,
	})

	assert.Equal(t, "mangahere", cfg.Site)
	assert.Equal(t, 6, cfg.Concurrency)
	assert.Equal(t, "Naruto", cfg.Title)
	assert.Equal(t, "/from/config", cfg.Output)
	assert.True(t, cfg.Debug)
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{Concurrency: -1}
	normalizeDefaults(cfg)

	assert.Equal(t, ".", cfg.Output)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	cfg, used, err := LoadMerged(Options{
		IgnoreConfig: true,
		Site:         "animea",
		Title:        "Bleach",
	})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "animea", cfg.Site)
	assert.Equal(t, "Bleach", cfg.Title)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestProfileStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", "")

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	_, err = CreateEmptyConfig("batch")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("batch"))

	infos, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Default", infos[0].Label)
	assert.False(t, infos[0].Active)
	assert.Equal(t, "batch", infos[1].Label)
	assert.True(t, infos[1].Active)

	require.NoError(t, RenameConfig("batch", "nightly"))
	label, err = CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "nightly", label)

	require.NoError(t, RemoveConfig("nightly", false))
	label, err = CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)
}

func TestSwitchToMissingConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", "")

	assert.Error(t, SwitchConfig("nope"))
}
