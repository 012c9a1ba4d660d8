package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, name)
}

// speedFactor scales the tick period in percent.
func speedFactor(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 150
	case DifficultyHard:
		return 75
	default:
		return 100
	}
}

// ApplyGoldrunPreset modifies the config based on a difficulty preset.
// Easy slows the game and makes enemies keep less gold, hard does the
// opposite.
func ApplyGoldrunPreset(cfg *GoldrunConfig, preset DifficultyPreset) {
	cfg.Game.TickMS = max(1, cfg.Game.TickMS*speedFactor(preset)/100)

	switch preset {
	case DifficultyEasy:
		cfg.Game.Lives = 8
		cfg.Gold.PickupPercent = 10
		cfg.Gold.DropPerMille = 150
	case DifficultyHard:
		cfg.Game.Lives = 3
		cfg.Gold.PickupPercent = 35
		cfg.Gold.DropPerMille = 40
	}
}
