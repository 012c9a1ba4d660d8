package core

import (
	"errors"
	"fmt"
)

// Level errors.
var (
	ErrNoHero         = errors.New("level has no hero")
	ErrMultipleHeroes = errors.New("level has more than one hero")
	ErrLevelTooSmall  = errors.New("level is too small")
	ErrBadLayout      = errors.New("bad level layout")
)

// Minimum playable size.
const (
	MinWidth  = 2
	MinHeight = 1
)

// Level is a level definition: a grid of layout codes plus metadata. Rows
// shorter than Width are padded with free cells.
type Level struct {
	ID     string
	Name   string
	Hint   string
	Rules  string
	Width  int
	Height int
	Layout []string
}

// Size returns the playable width and height. A zero Width or Height is
// derived from the layout.
func (l *Level) Size() (w, h int) {
	w, h = l.Width, l.Height
	if h == 0 {
		h = len(l.Layout)
	}
	if w == 0 {
		for _, row := range l.Layout {
			w = max(w, len(row))
		}
	}
	return w, h
}

// Validate checks the layout without building a grid.
func (l *Level) Validate() error {
	_, err := l.parse()
	return err
}

type parsedLevel struct {
	grid    *Grid
	hero    Coord
	enemies []Coord
}

func (l *Level) parse() (*parsedLevel, error) {
	w, h := l.Size()
	if w < MinWidth || h < MinHeight {
		return nil, fmt.Errorf("level %q: %w: %dx%d", l.ID, ErrLevelTooSmall, w, h)
	}
	if len(l.Layout) != h {
		return nil, fmt.Errorf("level %q: %w: %d rows, want %d", l.ID, ErrBadLayout, len(l.Layout), h)
	}

	p := &parsedLevel{grid: NewGrid(w, h)}
	heroes := 0
	for j, row := range l.Layout {
		if len(row) > w {
			return nil, fmt.Errorf("level %q: %w: row %d is %d wide, want %d", l.ID, ErrBadLayout, j+1, len(row), w)
		}
		for i := 0; i < len(row); i++ {
			t, ok := ParseCode(row[i])
			if !ok {
				return nil, fmt.Errorf("level %q: %w: unknown code %q at (%d,%d)", l.ID, ErrBadLayout, row[i], i+1, j+1)
			}
			at := C(i+1, j+1)
			switch t {
			case HeroStart:
				heroes++
				p.hero = at
				t = Free
			case EnemyStart:
				p.enemies = append(p.enemies, at)
				t = Free
			}
			p.grid.SetCell(at.I, at.J, t)
		}
	}
	switch {
	case heroes == 0:
		return nil, fmt.Errorf("level %q: %w", l.ID, ErrNoHero)
	case heroes > 1:
		return nil, fmt.Errorf("level %q: %w: found %d", l.ID, ErrMultipleHeroes, heroes)
	}
	return p, nil
}
