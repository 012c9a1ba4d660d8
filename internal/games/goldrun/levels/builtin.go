package levels

import (
	"embed"

	"github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

//go:embed packs/*.yaml
var packs embed.FS

// Builtin returns the levels shipped with the binary.
func Builtin() []*core.Level {
	l := &Loader{Root: "builtin", fsys: packs}
	levels, err := l.LoadAll()
	if err != nil || len(levels) == 0 {
		panic("levels: built-in pack is broken")
	}
	return levels
}

// Load returns the built-in levels when dir is empty, otherwise the levels
// found under dir.
func Load(dir string) ([]*core.Level, error) {
	if dir == "" {
		return Builtin(), nil
	}
	return NewLoader(dir).LoadAll()
}
