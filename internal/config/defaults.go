package config

import (
	_ "embed"
)

//go:embed defaults/goldrun.yaml
var defaultGoldrunYAML []byte

// DefaultGoldrunConfig returns the default configuration.
func DefaultGoldrunConfig() GoldrunConfig {
	return GoldrunConfig{
		Game: GameSettings{
			Lives:        5,
			RestartPause: 50,
			LevelPause:   50,
			TickMS:       20,
			MaxCatchUp:   5,
		},
		Scoring: ScoringConfig{
			Nugget:        250,
			EnemyTrapped:  75,
			EnemyKilled:   75,
			LevelComplete: 1500,
		},
		Gold: GoldConfig{
			PickupPercent: 20,
			DropPerMille:  80,
		},
		Respawn: RespawnConfig{
			Tries: 3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGoldrunYAML
}
