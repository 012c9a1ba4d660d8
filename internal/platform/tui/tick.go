// Package tui provides the Bubble Tea integration for goldrun. It runs the
// terminal loop, maps keys and the mouse to game actions, and paces the
// simulation with a core.Clock.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent when the host should catch the simulation up with
// the wall clock and redraw.
type FrameMsg time.Time

// frameCmd schedules the next frame one tick period from now.
func frameCmd(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
