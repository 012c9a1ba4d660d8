package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/goldrun/internal/games/goldrun"
	"github.com/vovakirdan/goldrun/internal/storage"
)

func TestScoreboardShowsScoresAndRecordings(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore(goldrun.ID, 4242, 3); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	if _, err := store.SaveRecording(storage.Recording{GameID: goldrun.ID, Seed: 1, Ticks: 99, Score: 4242, Result: "won"}); err != nil {
		t.Fatalf("SaveRecording: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.games[m.gameCursor].ID != goldrun.ID {
		t.Fatalf("first variant = %q, want %q", m.games[m.gameCursor].ID, goldrun.ID)
	}
	if view := m.View(); !strings.Contains(view, "4242") || !strings.Contains(view, "HIGH SCORES") {
		t.Errorf("scores view missing entry:\n%s", view)
	}

	next, _ := m.Update(runes("r"))
	m = next.(ScoreboardModel)
	view := m.View()
	if !strings.Contains(view, "RECORDINGS") || !strings.Contains(view, "won") {
		t.Errorf("recordings view missing entry:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}
}
