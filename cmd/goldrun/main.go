// goldrun is a KGoldrunner-style game for the terminal: collect the gold,
// dig traps for the enemies and climb out of the level.
//
// Usage:
//
//	goldrun play [variant]   - Play, optionally forcing one rule set
//	goldrun menu             - Pick the rules and start level interactively
//	goldrun list             - List the game variants
//	goldrun levels           - List the levels of the pack in play
//	goldrun rules            - List the rule sets
//	goldrun scores [variant] - Show high scores
//	goldrun recordings       - List saved recordings
//	goldrun replay <id>      - Verify or watch a recording
//	goldrun serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Custom goldrun.yaml
//	--difficulty <name>  - easy, normal or hard
//	--levels <dir>       - Load levels from a directory instead of the built-in pack
//	--rules <name>       - Force a rule set for every level
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.goldrun/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagRules      string
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "goldrun",
	Short: "Goldrun - a gold-collecting platform game in your terminal",
	Long: `Goldrun is a terminal game in the spirit of Lode Runner and KGoldrunner.
Run through each level collecting every nugget while enemies chase you.
Dig holes to trap them, then climb the escape ladders out of the level.

Available commands:
  play        - Play the game directly
  menu        - Pick the rules and the start level
  list        - Show the game variants
  levels      - Show the levels of the pack
  rules       - Show the rule sets
  scores      - View high scores
  recordings  - View saved recordings
  replay      - Verify or watch a recording
  serve       - Start SSH server for remote play

Examples:
  goldrun play
  goldrun play goldrun-scavenger --level 3
  goldrun menu --difficulty hard
  goldrun play --levels ./my-levels
  goldrun replay 12 --watch
  goldrun serve --ssh :2222`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom goldrun.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in pack)")
	pf.StringVar(&flagRules, "rules", "", "Force a rule set for every level")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.goldrun/scores.db", "Path to scores database")
	pf.StringVar(&flagLogFile, "log-file", "~/.goldrun/goldrun.log", "Log file used while a game is on screen")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}
