// Package goldrun adapts the simulation in goldrun/core to the platform:
// it maps keys and the mouse onto hero targets and digs, records every
// applied input for replay, and draws the level into a core.Screen.
package goldrun

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/goldrun/internal/config"
	"github.com/vovakirdan/goldrun/internal/core"
	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
	"github.com/vovakirdan/goldrun/internal/games/goldrun/levels"
	"github.com/vovakirdan/goldrun/internal/registry"
)

// ID is the identifier of the default variant, which plays each level
// under its own rules. Variants that force one rule set are named
// ID + "-" + rules name.
const ID = "goldrun"

// Options configures a Game.
type Options struct {
	Config config.GoldrunConfig
	// Levels defaults to the built-in pack.
	Levels []*gcore.Level
	// Start is the index of the first level.
	Start int
	// Rules overrides Config.Game.Rules and every level's rule set.
	Rules  string
	Logger *log.Logger
}

// DefaultOptions returns the default configuration with the built-in pack.
func DefaultOptions() Options {
	return Options{
		Config: config.DefaultGoldrunConfig(),
		Levels: levels.Builtin(),
	}
}

var (
	settingsMu sync.Mutex
	settings   = DefaultOptions()
)

// Configure sets the options used by games created through the registry.
func Configure(opts Options) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = opts
}

func configured(rules string) Options {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	opts := settings
	if rules != "" {
		opts.Rules = rules
	}
	return opts
}

func init() {
	registry.Register(ID, "Goldrun", func() registry.Game {
		return New(ID, "Goldrun", configured(""))
	})
	for _, name := range gcore.RulesNames() {
		r, err := gcore.NewRules(name)
		if err != nil {
			continue
		}
		id, title := VariantID(name), "Goldrun: "+r.Title
		registry.Register(id, title, func() registry.Game {
			return New(id, title, configured(name))
		})
	}
}

// VariantID returns the registry ID of the variant forcing a rule set.
func VariantID(rules string) string {
	if rules == "" {
		return ID
	}
	return ID + "-" + rules
}

// Game is a goldrun session driven one platform tick at a time.
type Game struct {
	id    string
	title string
	opts  Options

	logger  *log.Logger
	session *gcore.Session
	err     error
	seed    int64

	inputs []gcore.Input
	target gcore.Coord

	// script holds recorded inputs when the game replays a recording.
	script    []gcore.Input
	scriptPos int

	hud     hud
	view    view
	screenW int
	screenH int
}

// New creates a game. It does nothing until Reset.
func New(id, title string, opts Options) *Game {
	if len(opts.Levels) == 0 {
		opts.Levels = levels.Builtin()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{id: id, title: title, opts: opts, logger: logger}
}

// NewReplay creates a game that plays back recorded inputs instead of
// reading the player's. Reset must be given the recorded seed.
func NewReplay(id, title string, opts Options, inputs []gcore.Input) *Game {
	g := New(id, title, opts)
	g.script = append([]gcore.Input{}, inputs...)
	return g
}

// Replay plays recorded inputs through a fresh session without rendering
// and returns the session once it ends or reaches ticks.
func Replay(opts Options, seed int64, inputs []gcore.Input, ticks uint64, sink gcore.Sink) (*gcore.Session, error) {
	s, err := NewSession(opts, seed, sink)
	if err != nil {
		return nil, err
	}
	gcore.Replay(s, inputs, ticks)
	return s, nil
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset starts a new session from the first configured level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.inputs = nil
	g.target = gcore.Coord{}
	g.scriptPos = 0
	g.hud = hud{}

	g.session, g.err = NewSession(g.opts, g.seed, g)
	if g.err != nil {
		g.logger.Error("cannot start game", "id", g.id, "err", g.err)
		return
	}
	g.logger.Info("game started",
		"id", g.id,
		"seed", g.seed,
		"levels", len(g.opts.Levels),
		"start", g.opts.Start+1,
	)
}

// NewSession builds the session a game with these options and seed plays.
// Replaying recorded inputs through it reproduces the game.
func NewSession(opts Options, seed int64, sink gcore.Sink) (*gcore.Session, error) {
	so, err := SessionOptions(opts, seed)
	if err != nil {
		return nil, err
	}
	so.Player.Sink = sink
	return gcore.NewSession(opts.Levels, opts.Start, so)
}

// SessionOptions converts the configuration into simulation options.
func SessionOptions(opts Options, seed int64) (gcore.SessionOptions, error) {
	cfg := opts.Config
	so := gcore.SessionOptions{
		Lives:        cfg.Game.Lives,
		RestartPause: cfg.Game.RestartPause,
		LevelPause:   cfg.Game.LevelPause,
		Player: gcore.Options{
			Rand:   gcore.NewRand(seed),
			Logger: opts.Logger,
			Scoring: gcore.Scoring{
				Nugget:        cfg.Scoring.Nugget,
				EnemyTrapped:  cfg.Scoring.EnemyTrapped,
				EnemyKilled:   cfg.Scoring.EnemyKilled,
				LevelComplete: cfg.Scoring.LevelComplete,
			},
			PickupPercent: cfg.Gold.PickupPercent,
			DropPerMille:  cfg.Gold.DropPerMille,
			RespawnTries:  cfg.Respawn.Tries,
		},
	}

	rules := opts.Rules
	if rules == "" {
		rules = cfg.Game.Rules
	}
	if rules != "" {
		r, err := gcore.NewRules(rules)
		if err != nil {
			return so, err
		}
		so.Player.Rules = r
	}
	return so, nil
}

// Step advances the game by one tick. Inputs are turned into simulation
// inputs, applied and recorded before the tick runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Quit: true}
	}
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.session.Over() && g.script == nil {
		g.Reset(core.RuntimeConfig{
			Seed:    g.seed + 1,
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionHint) {
		g.hud.showHint = !g.hud.showHint
	}

	switch {
	case g.script != nil:
		g.playScript()
	case g.session.State() == gcore.SessionPlaying:
		g.processInput(in)
	}
	g.session.Tick(in.Missed)
	g.hud.tick()

	return core.StepResult{State: g.State()}
}

// processInput converts platform actions into simulation inputs.
func (g *Game) processInput(in core.InputFrame) {
	if in.Has(core.ActionSkip) {
		g.apply(gcore.Input{Kind: gcore.InputSkip})
	}

	lp := g.session.Player()
	hero := lp.Hero()
	w, h := lp.Grid().Width(), lp.Grid().Height()

	target := g.target
	switch {
	case in.Has(core.ActionLeft):
		target = gcore.C(1, hero.J)
	case in.Has(core.ActionRight):
		target = gcore.C(w, hero.J)
	case in.Has(core.ActionUp):
		target = gcore.C(hero.I, 1)
	case in.Has(core.ActionDown):
		target = gcore.C(hero.I, h)
	case in.Has(core.ActionStop):
		target = hero.NearestCell()
	}
	if in.Pointer != nil {
		if c, ok := g.view.cellAt(in.Pointer.X, in.Pointer.Y); ok {
			target = c
		}
	}
	if target != g.target && target.I > 0 {
		if g.apply(gcore.Input{Kind: gcore.InputTarget, I: target.I, J: target.J}) {
			g.target = target
		}
	}

	if in.Has(core.ActionDigLeft) {
		g.apply(gcore.Input{Kind: gcore.InputDigLeft})
	}
	if in.Has(core.ActionDigRight) {
		g.apply(gcore.Input{Kind: gcore.InputDigRight})
	}
}

// playScript applies the recorded inputs due before the next tick.
func (g *Game) playScript() {
	for g.scriptPos < len(g.script) && g.script[g.scriptPos].Tick <= g.session.Ticks() {
		in := g.script[g.scriptPos]
		if g.session.Apply(in) {
			g.inputs = append(g.inputs, in)
		}
		g.scriptPos++
	}
}

// SetStart chooses the level the next Reset starts from. Out of range
// indexes are clamped.
func (g *Game) SetStart(i int) {
	g.opts.Start = core.Clamp(i, 0, len(g.opts.Levels)-1)
}

// Replaying reports whether the game plays back a recording.
func (g *Game) Replaying() bool { return g.script != nil }

// apply stamps an input with the current tick and records it if the
// session accepted it.
func (g *Game) apply(in gcore.Input) bool {
	in.Tick = g.session.Ticks()
	if !g.session.Apply(in) {
		return false
	}
	g.inputs = append(g.inputs, in)
	return true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Lives:    g.session.Lives(),
		Level:    g.session.LevelIndex() + 1,
		GameOver: g.session.Over(),
		Won:      g.session.State() == gcore.SessionWon,
	}
}

// Err returns the error that stopped the last Reset, if any.
func (g *Game) Err() error { return g.err }

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 { return g.seed }

// Inputs returns the inputs applied so far, in order.
func (g *Game) Inputs() []gcore.Input { return g.inputs }

// Session returns the session in play, nil before Reset.
func (g *Game) Session() *gcore.Session { return g.session }

// Options returns the options the game was created with.
func (g *Game) Options() Options { return g.opts }

// Snapshot captures the game state for determinism checks.
type Snapshot struct {
	Tick   uint64
	Level  int
	Lives  int
	Score  int
	State  string
	Inputs int
	Player gcore.Snapshot
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return Snapshot{
		Tick:   g.session.Ticks(),
		Level:  g.session.LevelIndex() + 1,
		Lives:  g.session.Lives(),
		Score:  g.session.Score(),
		State:  g.session.State().String(),
		Inputs: len(g.inputs),
		Player: g.session.Player().Snapshot(),
	}
}

// String describes the game for logs.
func (g *Game) String() string {
	return fmt.Sprintf("%s(seed=%d)", g.id, g.seed)
}
