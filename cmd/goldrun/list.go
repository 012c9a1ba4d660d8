package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
	"github.com/vovakirdan/goldrun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game variants",
	Long:  `Shows every registered variant: the default one and one per rule set.`,
	Run:   runList,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the pack in play",
	Long: `Shows the levels goldrun would play, in order: the built-in pack, or the
levels found under --levels or the levels_dir setting.`,
	Run: runLevels,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule sets",
	Run:   runRules,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'goldrun play <id>' to play a variant.")
}

func runLevels(_ *cobra.Command, _ []string) {
	s := mustSetup(os.Stderr)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tID\tName\tRules\tSize\tHint")
	for i, l := range s.levels {
		width, height := l.Size()
		hint := "no"
		if l.Hint != "" {
			hint = "yes"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%dx%d\t%s\n", i+1, l.ID, l.Name, orDash(l.Rules), width, height, hint)
	}
	w.Flush()
}

func runRules(_ *cobra.Command, _ []string) {
	printRules(os.Stdout)
}

func printRules(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  Name\tTitle\tPoints/cell\tTiming")
	for _, name := range gcore.RulesNames() {
		r, err := gcore.NewRules(name)
		if err != nil {
			continue
		}
		timing := "fixed"
		if r.VariableTiming {
			timing = "by enemy count"
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", r.Name, r.Title, r.PointsPerCell, timing)
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
