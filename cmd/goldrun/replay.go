package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldrun/internal/core"
	"github.com/vovakirdan/goldrun/internal/games/goldrun"
	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
	"github.com/vovakirdan/goldrun/internal/games/goldrun/levels"
	"github.com/vovakirdan/goldrun/internal/platform/tui"
	"github.com/vovakirdan/goldrun/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a recording",
	Long: `Replay a recorded game. By default the recorded inputs are played through
a fresh simulation as fast as possible and the outcome is compared with
the one recorded. With --watch the game is shown in the terminal at its
recorded speed; pause and step work as in play.

The recording carries its own settings, so --config, --difficulty,
--levels and --rules are ignored.

Examples:
  goldrun replay 12
  goldrun replay 12 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Show the replay in the terminal")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitf("Error: invalid recording ID %q\n", args[0])
	}

	store := mustOpenStore()
	rec, err := store.Recording(id)
	store.Close()
	if errors.Is(err, storage.ErrNotFound) {
		exitf("Error: no recording %d\nRun 'goldrun recordings' to list them.\n", id)
	}
	if err != nil {
		exitf("Error: %v\n", err)
	}

	if flagWatch {
		watchRecording(rec)
		return
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		exitf("Error: %v\n", err)
	}
	res, err := verifyRecording(rec, logger)
	if err != nil {
		exitf("Error: %v\n", err)
	}
	res.print(os.Stdout)
	if !res.Matches() {
		os.Exit(2)
	}
}

// recordingOptions rebuilds the options a recording was played with.
func recordingOptions(rec storage.Recording, logger *log.Logger) (goldrun.Options, error) {
	lvls, err := levels.Load(rec.LevelsDir)
	if err != nil {
		return goldrun.Options{}, fmt.Errorf("cannot load levels: %w", err)
	}
	return goldrun.Options{
		Config: rec.Config,
		Levels: lvls,
		Start:  rec.Start,
		Rules:  rec.Rules,
		Logger: logger,
	}, nil
}

// replayResult compares a replayed session with its recording.
type replayResult struct {
	rec       storage.Recording
	ticks     uint64
	score     int
	state     gcore.SessionState
	completed int
	deaths    int
	kills     int
}

// Matches reports whether the replay reproduced the recorded outcome.
func (r replayResult) Matches() bool {
	return r.ticks == r.rec.Ticks && r.score == r.rec.Score
}

func (r replayResult) print(out io.Writer) {
	fmt.Fprintf(out, "Recording %d - %s, seed %d\n", r.rec.ID, r.rec.GameID, r.rec.Seed)
	fmt.Fprintf(out, "  recorded: %d ticks, score %d, %s\n", r.rec.Ticks, r.rec.Score, r.rec.Result)
	fmt.Fprintf(out, "  replayed: %d ticks, score %d, %s\n", r.ticks, r.score, r.state)
	fmt.Fprintf(out, "  levels completed %d, deaths %d, enemies killed %d\n", r.completed, r.deaths, r.kills)
	if r.Matches() {
		fmt.Fprintln(out, "OK: the replay matches the recording")
	} else {
		fmt.Fprintln(out, "MISMATCH: the replay diverged from the recording")
	}
}

// verifyRecording plays the recorded inputs through a fresh session.
func verifyRecording(rec storage.Recording, logger *log.Logger) (replayResult, error) {
	opts, err := recordingOptions(rec, logger)
	if err != nil {
		return replayResult{}, err
	}

	events := &gcore.Recorder{}
	s, err := goldrun.Replay(opts, rec.Seed, rec.Inputs, rec.Ticks, events)
	if err != nil {
		return replayResult{}, err
	}

	return replayResult{
		rec:       rec,
		ticks:     s.Ticks(),
		score:     s.Score(),
		state:     s.State(),
		completed: len(gcore.EventsOf[gcore.LevelComplete](events)),
		deaths:    len(gcore.EventsOf[gcore.HeroCaught](events)),
		kills:     len(gcore.EventsOf[gcore.EnemyKilled](events)),
	}, nil
}

func watchRecording(rec storage.Recording) {
	out := logFile()
	defer out.Close()
	logger, err := newLogger(out)
	if err != nil {
		exitf("Error: %v\n", err)
	}

	opts, err := recordingOptions(rec, logger)
	if err != nil {
		exitf("Error: %v\n", err)
	}
	game := goldrun.NewReplay(rec.GameID, fmt.Sprintf("Replay #%d", rec.ID), opts, rec.Inputs)

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		Tick:       opts.Config.TickPeriod(),
		MaxCatchUp: opts.Config.Game.MaxCatchUp,
		Seed:       rec.Seed,
	}
	if err := tui.Run(game, nil, runtime, logger); err != nil {
		exitf("Error running replay: %v\n", err)
	}
}
