package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldrun/internal/games/goldrun"
	"github.com/vovakirdan/goldrun/internal/platform/tui"
	"github.com/vovakirdan/goldrun/internal/registry"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play goldrun",
	Long: `Start playing. Without a variant each level is played under the rules
it names; a variant such as goldrun-traditional forces one rule set.

Controls:
  Arrows/hjkl   - Run and climb
  Mouse         - The hero runs toward the pointer
  Z / X         - Dig left / right (also left and right mouse buttons)
  Space         - Stop
  I             - Show the level hint
  P/Esc         - Pause, then . to step one tick
  +             - Skip the level
  R             - Restart (after game over)
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Examples:
  goldrun play
  goldrun play goldrun-alternate
  goldrun play --level 4 --difficulty easy
  goldrun play --config ./my-goldrun.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 1, "Level to start from (1-based)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := goldrun.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		exitf("Error: unknown variant %q\nRun 'goldrun list' to see available variants.\n", gameID)
	}

	out := logFile()
	defer out.Close()
	s := mustSetup(out)

	game, err := tui.CreateGame(gameID, flagStartLevel-1)
	if err != nil {
		exitf("Error creating game: %v\n", err)
	}

	store := openStore(s.logger)
	runErr := tui.Run(game, store, s.runtime, s.logger)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		exitf("Error running game: %v\n", runErr)
	}
}
