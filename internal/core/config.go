package core

import "time"

// RuntimeConfig is passed to the game when it starts.
type RuntimeConfig struct {
	ScreenW int           // Screen width in characters
	ScreenH int           // Screen height in characters
	Tick    time.Duration // Simulation tick period
	// MaxCatchUp bounds how many ticks one Advance may return after a stall.
	MaxCatchUp int
	Seed       int64 // 0 means the platform picks one
}

// DefaultConfig returns an 80x24 screen with a 20ms tick.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		Tick:       20 * time.Millisecond,
		MaxCatchUp: 5,
	}
}

// GameState is the status the game reports to the platform.
type GameState struct {
	Score    int
	Lives    int
	Level    int // 1-based position in the level sequence
	GameOver bool
	Won      bool
	Paused   bool
}

// StepResult is returned by each simulation step.
type StepResult struct {
	State GameState
	// Quit asks the platform to leave the game.
	Quit bool
}
