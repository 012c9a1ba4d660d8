package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/goldrun/internal/config"
	"github.com/vovakirdan/goldrun/internal/core"
	"github.com/vovakirdan/goldrun/internal/games/goldrun"
	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
	"github.com/vovakirdan/goldrun/internal/games/goldrun/levels"
	"github.com/vovakirdan/goldrun/internal/storage"
)

// setup is what every command builds from the global flags.
type setup struct {
	config  config.GoldrunConfig
	levels  []*gcore.Level
	logger  *log.Logger
	runtime core.RuntimeConfig
}

// loadSetup loads the configuration and the levels, applies the flags and
// configures the registered goldrun variants. Logs go to w.
func loadSetup(w io.Writer) (setup, error) {
	logger, err := newLogger(w)
	if err != nil {
		return setup{}, err
	}

	cfg, err := config.Load(flagConfig, flagDifficulty)
	if err != nil {
		return setup{}, err
	}
	if flagLevelsDir != "" {
		cfg.Game.LevelsDir = flagLevelsDir
	}
	if flagRules != "" {
		if _, err := gcore.NewRules(flagRules); err != nil {
			return setup{}, err
		}
		cfg.Game.Rules = flagRules
	}

	lvls, err := levels.Load(cfg.Game.LevelsDir)
	if err != nil {
		return setup{}, fmt.Errorf("cannot load levels: %w", err)
	}
	if len(lvls) == 0 {
		return setup{}, fmt.Errorf("no levels found in %s", cfg.Game.LevelsDir)
	}

	goldrun.Configure(goldrun.Options{
		Config: cfg,
		Levels: lvls,
		Logger: logger,
	})
	logger.Debug("configured",
		"levels", len(lvls),
		"dir", cfg.Game.LevelsDir,
		"rules", cfg.Game.Rules,
		"tick", cfg.TickPeriod(),
	)

	width, height := terminalSize()
	return setup{
		config: cfg,
		levels: lvls,
		logger: logger,
		runtime: core.RuntimeConfig{
			ScreenW:    width,
			ScreenH:    height,
			Tick:       cfg.TickPeriod(),
			MaxCatchUp: cfg.Game.MaxCatchUp,
			Seed:       flagSeed,
		},
	}, nil
}

// mustSetup is loadSetup for commands that cannot run without it.
func mustSetup(w io.Writer) setup {
	s, err := loadSetup(w)
	if err != nil {
		exitf("Error: %v\n", err)
	}
	return s
}

func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
		Prefix:          "goldrun",
	}), nil
}

// logFile opens the log file used while the terminal shows a game. Logging
// is dropped when it cannot be opened.
func logFile() io.WriteCloser {
	path := expandHome(flagLogFile)
	if path == "" {
		return nopCloser{io.Discard}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nopCloser{io.Discard}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// openStore opens the scores database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func levelNames(lvls []*gcore.Level) []string {
	names := make([]string, len(lvls))
	for i, l := range lvls {
		names[i] = l.Name
	}
	return names
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
