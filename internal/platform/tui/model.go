package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/goldrun/internal/core"
	"github.com/vovakirdan/goldrun/internal/registry"
	"github.com/vovakirdan/goldrun/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig

	clock *core.Clock
	last  time.Time
	frame core.InputFrame
	state core.GameState

	keys KeyMap
	help help.Model

	allowBack  bool
	backToMenu bool
	quitting   bool
	saved      bool
}

// NewModel creates a model for the given game. store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		logger: logger,
		config: cfg,
		clock:  core.NewClock(cfg.Tick, cfg.MaxCatchUp),
		frame:  core.NewInputFrame(),
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the game and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return frameCmd(m.clock.Period())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back) && m.allowBack:
		m.save("quit")
		m.backToMenu = true
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.save("quit")
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		m.state.Paused = m.clock.Toggle()
	case core.ActionStep:
		m.clock.Step()
	case core.ActionRestart:
		if m.state.GameOver {
			m.frame.Set(a)
		}
	case core.ActionNone:
	default:
		m.frame.Set(a)
	}
	return m, nil
}

// handleMouse steers the hero toward the pointer; the buttons dig.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.frame.PointAt(msg.X, msg.Y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.frame.Set(core.ActionDigLeft)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.frame.Set(core.ActionDigRight)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleFrame runs the ticks the clock owes. Input gathered since the last
// tick goes to the first of them; the rest run without input.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.clock.Period()
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	ticks := m.clock.Advance(elapsed)
	for i, tk := range ticks {
		in := m.frame
		if i > 0 {
			in = core.NewInputFrame()
		}
		in.Missed = tk.Missed

		res := m.game.Step(in)
		m.state = res.State
		if res.Quit {
			m.save("quit")
			m.quitting = true
			return m, tea.Quit
		}
	}
	if len(ticks) > 0 {
		m.frame.Clear()
	}
	m.state.Paused = m.clock.Frozen()

	switch {
	case m.state.GameOver && !m.saved:
		result := "game-over"
		if m.state.Won {
			result = "won"
		}
		m.save(result)
	case !m.state.GameOver:
		m.saved = false
	}

	return m, frameCmd(m.clock.Period())
}

// save stores the score and the recording once per game. Failures are
// logged and otherwise ignored.
func (m *Model) save(result string) {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	if m.state.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.state.Score, m.state.Level); err != nil {
			m.logger.Warn("cannot save score", "err", err)
		}
	}
	rec, ok := recordingOf(m.game, result)
	if !ok {
		return
	}
	id, err := m.store.SaveRecording(rec)
	if err != nil {
		m.logger.Warn("cannot save recording", "err", err)
		return
	}
	m.logger.Info("recording saved", "id", id, "result", result, "ticks", rec.Ticks)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".goldrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the game and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.state.Paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED  p to resume  . to step ", core.ColorBrightYellow)
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last state the game reported.
func (m Model) State() core.GameState { return m.state }

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// IsQuitting reports whether the player quit.
func (m Model) IsQuitting() bool { return m.quitting }

// Run starts the Bubble Tea program for a game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
