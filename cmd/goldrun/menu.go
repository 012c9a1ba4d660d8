package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldrun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick the rules and the start level from a menu",
	Long: `Start goldrun in interactive menu mode.

Choose a variant with the arrow keys or j/k and the level to start from
with left/right, then press Enter. Quitting a game returns to the menu.

Controls:
  Up/Down/j/k     - Choose the rules
  Left/Right/h/l  - Choose the start level
  Enter/Space     - Play
  Tab             - High scores and recordings
  Q               - Quit

Examples:
  goldrun menu
  goldrun menu --difficulty hard
  goldrun menu --levels ./my-levels`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	out := logFile()
	defer out.Close()
	s := mustSetup(out)

	store := openStore(s.logger)
	cfg := s.runtime
	names := levelNames(s.levels)

	for {
		menuResult, err := tui.RunMenu(store, cfg, names)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}
		if menuResult.Quit || menuResult.GameID == "" {
			break
		}

		game, err := tui.CreateGame(menuResult.GameID, menuResult.Start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fixed --seed replays the same game every time.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, s.logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
