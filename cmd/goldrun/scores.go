package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldrun/internal/games/goldrun"
	"github.com/vovakirdan/goldrun/internal/registry"
	"github.com/vovakirdan/goldrun/internal/storage"
)

var (
	flagScoresLimit     int
	flagRecordingsLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top high scores for a variant, the default variant when
none is given.

Examples:
  goldrun scores
  goldrun scores goldrun-scavenger --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List saved recordings",
	Long: `Every game that ran at least one tick is recorded when it ends. Use the
ID with 'goldrun replay' to verify or watch it.`,
	Run: runRecordings,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	recordingsCmd.Flags().IntVar(&flagRecordingsLimit, "limit", 20, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := goldrun.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		exitf("Error: unknown variant %q\nRun 'goldrun list' to see available variants.\n", gameID)
	}
	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	store := mustOpenStore()
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		exitf("Error retrieving scores: %v\n", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'goldrun play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
}

func runRecordings(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	recs, err := store.RecentRecordings(flagRecordingsLimit)
	if err != nil {
		exitf("Error retrieving recordings: %v\n", err)
	}
	if len(recs) == 0 {
		fmt.Println("No recordings yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tVariant\tScore\tResult\tTicks\tInputs\tDate")
	for _, r := range recs {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%s\t%d\t%d\t%s\n",
			r.ID, r.GameID, r.Score, r.Result, r.Ticks, len(r.Inputs), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("Error opening scores database: %v\n", err)
	}
	return store
}
