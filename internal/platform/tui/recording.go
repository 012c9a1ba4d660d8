package tui

import (
	"github.com/vovakirdan/goldrun/internal/games/goldrun"
	"github.com/vovakirdan/goldrun/internal/registry"
	"github.com/vovakirdan/goldrun/internal/storage"
)

// recordingOf captures a finished or abandoned goldrun game so it can be
// replayed later. Games that are themselves replays, or that never ran a
// tick, are not recorded.
func recordingOf(game registry.Game, result string) (storage.Recording, bool) {
	g, ok := game.(*goldrun.Game)
	if !ok || g.Replaying() || g.Session() == nil || g.Session().Ticks() == 0 {
		return storage.Recording{}, false
	}
	opts := g.Options()
	return storage.Recording{
		GameID:    g.ID(),
		Seed:      g.Seed(),
		Start:     opts.Start,
		LevelsDir: opts.Config.Game.LevelsDir,
		Rules:     opts.Rules,
		Config:    opts.Config,
		Inputs:    g.Inputs(),
		Ticks:     g.Session().Ticks(),
		Score:     g.Session().Score(),
		Result:    result,
	}, true
}
