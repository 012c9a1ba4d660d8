package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg GoldrunConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, DefaultGoldrunConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  lives: 2\ngold:\n  pickup_percent: 50\n"), 0o644))

	cfg, err := LoadGoldrun(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.Lives)
	assert.Equal(t, 50, cfg.Gold.PickupPercent)
	assert.Equal(t, 20, cfg.Game.TickMS)
	assert.Equal(t, 250, cfg.Scoring.Nugget)
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadGoldrun(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("game: [1, 2"), 0o644))
	_, err = LoadGoldrun(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("game:\n  lives: 0\n"), 0o644))
	_, err = LoadGoldrun(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GoldrunConfig)
	}{
		{"no lives", func(c *GoldrunConfig) { c.Game.Lives = 0 }},
		{"zero tick", func(c *GoldrunConfig) { c.Game.TickMS = 0 }},
		{"negative pause", func(c *GoldrunConfig) { c.Game.LevelPause = -1 }},
		{"pickup over 100", func(c *GoldrunConfig) { c.Gold.PickupPercent = 101 }},
		{"drop over 1000", func(c *GoldrunConfig) { c.Gold.DropPerMille = 1001 }},
		{"negative tries", func(c *GoldrunConfig) { c.Respawn.Tries = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGoldrunConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestPresets(t *testing.T) {
	easy := DefaultGoldrunConfig()
	ApplyGoldrunPreset(&easy, DifficultyEasy)
	assert.Equal(t, 30*time.Millisecond, easy.TickPeriod())
	assert.Equal(t, 8, easy.Game.Lives)

	hard := DefaultGoldrunConfig()
	ApplyGoldrunPreset(&hard, DifficultyHard)
	assert.Equal(t, 15*time.Millisecond, hard.TickPeriod())
	assert.Equal(t, 3, hard.Game.Lives)
	assert.NoError(t, hard.Validate())

	normal := DefaultGoldrunConfig()
	ApplyGoldrunPreset(&normal, DifficultyNormal)
	assert.Equal(t, DefaultGoldrunConfig(), normal)
}

func TestLoadWithPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  tick_ms: 40\n"), 0o644))

	cfg, err := Load(path, "hard")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Game.TickMS)

	_, err = Load(path, "nightmare")
	assert.ErrorIs(t, err, ErrInvalid)
}
