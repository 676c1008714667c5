package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/madeline")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("CELESTE_SAVE_DIR", "")
	t.Setenv("CELESTE_PAUSE", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HISTORY_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "/home/madeline", cfg.Home)
	assert.Empty(t, cfg.DataHome)
	assert.True(t, cfg.Pause)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 20, cfg.HistoryLimit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("CELESTE_SAVE_DIR", "/saves")
	t.Setenv("CELESTE_PAUSE", "false")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("HISTORY_LIMIT", "5")

	cfg := Load()

	assert.Equal(t, "/data", cfg.DataHome)
	assert.Equal(t, "/saves", cfg.SaveDir)
	assert.False(t, cfg.Pause)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, 5, cfg.HistoryLimit)
}

func TestEnvParsingFallsBack(t *testing.T) {
	t.Setenv("HISTORY_LIMIT", "many")
	t.Setenv("CELESTE_PAUSE", "sometimes")

	assert.Equal(t, 20, getEnvInt("HISTORY_LIMIT", 20))
	assert.True(t, getEnvBool("CELESTE_PAUSE", true))
}
