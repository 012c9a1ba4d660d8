// Package config provides YAML-based configuration loading and difficulty
// presets for goldrun.
package config

import (
	"errors"
	"fmt"
	"time"
)

// GoldrunConfig contains all configuration for a goldrun game.
type GoldrunConfig struct {
	Game    GameSettings  `yaml:"game"`
	Scoring ScoringConfig `yaml:"scoring"`
	Gold    GoldConfig    `yaml:"gold"`
	Respawn RespawnConfig `yaml:"respawn"`
}

// GameSettings defines session and timing parameters.
type GameSettings struct {
	Lives        int    `yaml:"lives"`
	RestartPause int    `yaml:"restart_pause"` // ticks between a death and the retry
	LevelPause   int    `yaml:"level_pause"`   // ticks between two levels
	TickMS       int    `yaml:"tick_ms"`
	MaxCatchUp   int    `yaml:"max_catch_up"`
	Rules        string `yaml:"rules"`      // overrides each level's rules when set
	LevelsDir    string `yaml:"levels_dir"` // empty means the built-in pack
}

// ScoringConfig defines the points awarded.
type ScoringConfig struct {
	Nugget        int `yaml:"nugget"`
	EnemyTrapped  int `yaml:"enemy_trapped"`
	EnemyKilled   int `yaml:"enemy_killed"`
	LevelComplete int `yaml:"level_complete"`
}

// GoldConfig defines how enemies handle gold.
type GoldConfig struct {
	PickupPercent int `yaml:"pickup_percent"`
	DropPerMille  int `yaml:"drop_per_mille"`
}

// RespawnConfig defines how killed enemies reappear.
type RespawnConfig struct {
	Tries int `yaml:"tries"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges.
func (c GoldrunConfig) Validate() error {
	switch {
	case c.Game.Lives < 1:
		return fmt.Errorf("%w: lives must be at least 1, got %d", ErrInvalid, c.Game.Lives)
	case c.Game.TickMS < 1:
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.Game.TickMS)
	case c.Game.RestartPause < 0 || c.Game.LevelPause < 0:
		return fmt.Errorf("%w: pauses must not be negative", ErrInvalid)
	case c.Gold.PickupPercent < 0 || c.Gold.PickupPercent > 100:
		return fmt.Errorf("%w: pickup_percent must be in [0,100], got %d", ErrInvalid, c.Gold.PickupPercent)
	case c.Gold.DropPerMille < 0 || c.Gold.DropPerMille > 1000:
		return fmt.Errorf("%w: drop_per_mille must be in [0,1000], got %d", ErrInvalid, c.Gold.DropPerMille)
	case c.Respawn.Tries < 0:
		return fmt.Errorf("%w: respawn tries must not be negative", ErrInvalid)
	}
	return nil
}

// TickPeriod returns the simulation tick period.
func (c GoldrunConfig) TickPeriod() time.Duration {
	return time.Duration(c.Game.TickMS) * time.Millisecond
}
