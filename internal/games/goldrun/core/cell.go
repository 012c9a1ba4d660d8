package core

import "fmt"

// CellType identifies what occupies one grid position.
type CellType uint8

const (
	Free CellType = iota
	Brick
	FalseBrick // Looks solid, runners fall through it
	Concrete
	Ladder
	HiddenLadder // Becomes Ladder once all gold is collected
	Bar
	Nugget
	HeroStart  // Layout only, stored as Free
	EnemyStart // Layout only, stored as Free
	Hole
	UsedHole // Hole occupied by a trapped enemy
)

// Layout codes, one byte per cell.
const (
	CodeFree         = ' '
	CodeFreeAlt      = '.'
	CodeBrick        = 'M'
	CodeFalseBrick   = 'F'
	CodeConcrete     = 'X'
	CodeLadder       = 'H'
	CodeHiddenLadder = 'Z'
	CodeBar          = 'T'
	CodeBarAlt       = '-'
	CodeNugget       = 'N'
	CodeHero         = 'R'
	CodeEnemy        = 'E'
	CodeHole         = 'O'
	CodeUsedHole     = 'U'
)

// ParseCode converts a layout byte into a cell type.
func ParseCode(b byte) (CellType, bool) {
	switch b {
	case CodeFree, CodeFreeAlt:
		return Free, true
	case CodeBrick:
		return Brick, true
	case CodeFalseBrick:
		return FalseBrick, true
	case CodeConcrete:
		return Concrete, true
	case CodeLadder:
		return Ladder, true
	case CodeHiddenLadder:
		return HiddenLadder, true
	case CodeBar, CodeBarAlt:
		return Bar, true
	case CodeNugget:
		return Nugget, true
	case CodeHero:
		return HeroStart, true
	case CodeEnemy:
		return EnemyStart, true
	case CodeHole:
		return Hole, true
	case CodeUsedHole:
		return UsedHole, true
	}
	return Free, false
}

// Code returns the layout byte for the cell type.
func (t CellType) Code() byte {
	switch t {
	case Brick:
		return CodeBrick
	case FalseBrick:
		return CodeFalseBrick
	case Concrete:
		return CodeConcrete
	case Ladder:
		return CodeLadder
	case HiddenLadder:
		return CodeHiddenLadder
	case Bar:
		return CodeBar
	case Nugget:
		return CodeNugget
	case HeroStart:
		return CodeHero
	case EnemyStart:
		return CodeEnemy
	case Hole:
		return CodeHole
	case UsedHole:
		return CodeUsedHole
	default:
		return CodeFree
	}
}

func (t CellType) String() string {
	switch t {
	case Free:
		return "free"
	case Brick:
		return "brick"
	case FalseBrick:
		return "false-brick"
	case Concrete:
		return "concrete"
	case Ladder:
		return "ladder"
	case HiddenLadder:
		return "hidden-ladder"
	case Bar:
		return "bar"
	case Nugget:
		return "nugget"
	case HeroStart:
		return "hero"
	case EnemyStart:
		return "enemy"
	case Hole:
		return "hole"
	case UsedHole:
		return "used-hole"
	default:
		return fmt.Sprintf("CellType(%d)", uint8(t))
	}
}

// Access is the set of movement permissions precomputed for a cell.
type Access uint8

const (
	Enterable Access = 1 << iota
	CanStand
	CanGoUp
	CanGoDown
	CanGoLeft
	CanGoRight
)

// Has reports whether every bit of f is set.
func (a Access) Has(f Access) bool {
	return a&f == f
}

// Coord is a grid position. I is the column, J the row; row 1 is the top
// playable row.
type Coord struct {
	I int
	J int
}

// C is a convenience constructor for Coord.
func C(i, j int) Coord {
	return Coord{I: i, J: j}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.I, c.J)
}

// Direction is a runner's movement direction.
type Direction int

const (
	Stand Direction = iota
	Left
	Right
	Up
	Down
)

// Delta returns the grid step for the direction.
func (d Direction) Delta() (di, dj int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	return 0, 0
}

// Opposite returns the reverse direction. Stand is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return Stand
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// flag returns the access bit that permits a move in direction d.
func (d Direction) flag() Access {
	switch d {
	case Left:
		return CanGoLeft
	case Right:
		return CanGoRight
	case Up:
		return CanGoUp
	case Down:
		return CanGoDown
	}
	return 0
}

func (d Direction) String() string {
	switch d {
	case Stand:
		return "stand"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}
