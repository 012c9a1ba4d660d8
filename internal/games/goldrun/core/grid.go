package core

// Dig schedule. A dug brick opens over digOpenStages stages, stays an open
// hole, then closes over digCloseStages stages before reverting to Brick.
const (
	digOpenStages  = 4
	digOpenTicks   = 2
	digCloseStages = 4
	digCloseTicks  = 4

	// DigStageOpen is the stage at which a dug brick becomes a Hole.
	DigStageOpen = digOpenStages + 1
	// DigStageLast is the final closing stage.
	DigStageLast = DigStageOpen + digCloseStages

	// MinBrickLifetime is the shortest lifetime that leaves the hole open
	// for at least one tick.
	MinBrickLifetime = digOpenStages*digOpenTicks + digCloseStages*digCloseTicks + 1
)

// Grid stores the level's cells with a one-cell Concrete border. Cells are
// addressed by (i, j) with 1 <= i <= Width and 1 <= j <= Height; anything
// outside reads as Concrete.
type Grid struct {
	w, h   int
	stride int

	cells       []CellType
	digStage    []uint8
	heroAccess  []Access
	enemyAccess []Access

	runThroughHole bool
	hiddenLadders  []Coord
	digs           []*dugBrick
}

type dugBrick struct {
	at       Coord
	elapsed  int
	lifetime int
	stage    int
}

// DigChange reports one step of a dug brick's lifecycle.
type DigChange struct {
	At     Coord
	Stage  int  // 0 once the brick is whole again
	Closed bool // The brick has reverted and may crush a runner
}

// NewGrid returns a w x h grid of Free cells surrounded by Concrete.
func NewGrid(w, h int) *Grid {
	stride := w + 2
	n := stride * (h + 2)
	g := &Grid{
		w:           w,
		h:           h,
		stride:      stride,
		cells:       make([]CellType, n),
		digStage:    make([]uint8, n),
		heroAccess:  make([]Access, n),
		enemyAccess: make([]Access, n),
	}
	for j := 0; j <= h+1; j++ {
		for i := 0; i <= w+1; i++ {
			if !g.inside(i, j) {
				g.cells[g.index(i, j)] = Concrete
			}
		}
	}
	return g
}

func (g *Grid) index(i, j int) int {
	return i + j*g.stride
}

func (g *Grid) inside(i, j int) bool {
	return i >= 1 && i <= g.w && j >= 1 && j <= g.h
}

// Width returns the number of playable columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of playable rows.
func (g *Grid) Height() int { return g.h }

// Cell returns the cell type at (i, j), or Concrete outside the grid.
func (g *Grid) Cell(i, j int) CellType {
	if !g.inside(i, j) {
		return Concrete
	}
	return g.cells[g.index(i, j)]
}

// DigStage returns the dig stage of (i, j): 0 for an undisturbed cell,
// 1..DigStageLast while a dug brick cycles.
func (g *Grid) DigStage(i, j int) int {
	if !g.inside(i, j) {
		return 0
	}
	return int(g.digStage[g.index(i, j)])
}

// HeroAccess returns the hero's movement flags for (i, j).
func (g *Grid) HeroAccess(i, j int) Access {
	if !g.inside(i, j) {
		return 0
	}
	return g.heroAccess[g.index(i, j)]
}

// EnemyAccess returns the enemies' movement flags for (i, j).
func (g *Grid) EnemyAccess(i, j int) Access {
	if !g.inside(i, j) {
		return 0
	}
	return g.enemyAccess[g.index(i, j)]
}

// SetCell changes the type of (i, j) and refreshes the access flags it
// affects. Writes outside the grid are ignored.
func (g *Grid) SetCell(i, j int, t CellType) {
	if !g.inside(i, j) {
		return
	}
	if t == HiddenLadder {
		g.hiddenLadders = append(g.hiddenLadders, C(i, j))
	}
	g.cells[g.index(i, j)] = t
	g.NotifyCellChanged(i, j)
}

// NotifyCellChanged recomputes the access flags of (i, j) and of its four
// neighbours, whose flags depend on it.
func (g *Grid) NotifyCellChanged(i, j int) {
	g.refresh(i, j)
	g.refresh(i-1, j)
	g.refresh(i+1, j)
	g.refresh(i, j-1)
	g.refresh(i, j+1)
}

// CalculateAccess recomputes every flag. runThroughHole lets enemies enter
// open holes sideways without being trapped.
func (g *Grid) CalculateAccess(runThroughHole bool) {
	g.runThroughHole = runThroughHole
	for j := 1; j <= g.h; j++ {
		for i := 1; i <= g.w; i++ {
			g.refresh(i, j)
		}
	}
}

func (g *Grid) refresh(i, j int) {
	if !g.inside(i, j) {
		return
	}
	k := g.index(i, j)
	g.heroAccess[k] = g.access(i, j, false)
	g.enemyAccess[k] = g.access(i, j, true)
}

func (g *Grid) access(i, j int, enemy bool) Access {
	var a Access
	here := g.Cell(i, j)
	if g.enterable(i, j, enemy, false) {
		a |= Enterable
	}
	if g.supports(i, j+1) || here == Ladder || here == Bar {
		a |= CanStand
	}
	if here == Ladder && g.enterable(i, j-1, enemy, false) {
		a |= CanGoUp
	}
	if g.enterable(i, j+1, enemy, false) {
		a |= CanGoDown
	}
	if g.enterable(i-1, j, enemy, true) {
		a |= CanGoLeft
	}
	if g.enterable(i+1, j, enemy, true) {
		a |= CanGoRight
	}
	return a
}

// enterable reports whether a runner may move into (i, j). An intact or
// opening brick blocks; FalseBrick never does.
func (g *Grid) enterable(i, j int, enemy, sideways bool) bool {
	switch g.Cell(i, j) {
	case Brick, Concrete, UsedHole:
		return false
	case Hole:
		return !(enemy && sideways && !g.runThroughHole)
	}
	return true
}

func (g *Grid) supports(i, j int) bool {
	switch g.Cell(i, j) {
	case Brick, Concrete, Ladder, UsedHole:
		return true
	}
	return false
}

// Dig starts the dig cycle of the intact brick at (i, j). It reports false
// when the cell is not a whole Brick.
func (g *Grid) Dig(i, j, lifetime int) bool {
	if g.Cell(i, j) != Brick || g.DigStage(i, j) != 0 {
		return false
	}
	if lifetime < MinBrickLifetime {
		lifetime = MinBrickLifetime
	}
	d := &dugBrick{at: C(i, j), lifetime: lifetime, stage: 1}
	g.digs = append(g.digs, d)
	g.digStage[g.index(i, j)] = 1
	return true
}

// Digging returns the number of bricks currently in their dig cycle.
func (g *Grid) Digging() int {
	return len(g.digs)
}

// AdvanceDigs moves every dug brick forward one tick and reports the stage
// changes in the order the bricks were dug.
func (g *Grid) AdvanceDigs() []DigChange {
	if len(g.digs) == 0 {
		return nil
	}
	var changes []DigChange
	kept := g.digs[:0]
	for _, d := range g.digs {
		d.elapsed++
		k := g.index(d.at.I, d.at.J)
		if d.elapsed >= d.lifetime {
			g.digStage[k] = 0
			g.cells[k] = Brick
			g.NotifyCellChanged(d.at.I, d.at.J)
			changes = append(changes, DigChange{At: d.at, Closed: true})
			continue
		}
		kept = append(kept, d)
		stage := digStageAt(d.elapsed, d.lifetime)
		if stage == d.stage {
			continue
		}
		d.stage = stage
		g.digStage[k] = uint8(stage)
		if stage == DigStageOpen {
			g.cells[k] = Hole
			g.NotifyCellChanged(d.at.I, d.at.J)
		}
		changes = append(changes, DigChange{At: d.at, Stage: stage})
	}
	for i := len(kept); i < len(g.digs); i++ {
		g.digs[i] = nil
	}
	g.digs = kept
	return changes
}

func digStageAt(elapsed, lifetime int) int {
	opening := digOpenStages * digOpenTicks
	open := lifetime - opening - digCloseStages*digCloseTicks
	switch {
	case elapsed < opening:
		return 1 + elapsed/digOpenTicks
	case elapsed < opening+open:
		return DigStageOpen
	default:
		stage := DigStageOpen + 1 + (elapsed-opening-open)/digCloseTicks
		return min(stage, DigStageLast)
	}
}

// UseHole marks the open hole at (i, j) as occupied by a trapped enemy.
func (g *Grid) UseHole(i, j int) bool {
	if g.Cell(i, j) != Hole {
		return false
	}
	g.cells[g.index(i, j)] = UsedHole
	g.NotifyCellChanged(i, j)
	return true
}

// ReleaseHole reverts an occupied hole to an open one.
func (g *Grid) ReleaseHole(i, j int) bool {
	if g.Cell(i, j) != UsedHole {
		return false
	}
	g.cells[g.index(i, j)] = Hole
	g.NotifyCellChanged(i, j)
	return true
}

// HiddenLadders returns the positions of ladders still hidden.
func (g *Grid) HiddenLadders() []Coord {
	var out []Coord
	for _, c := range g.hiddenLadders {
		if g.Cell(c.I, c.J) == HiddenLadder {
			out = append(out, c)
		}
	}
	return out
}

// RevealHiddenLadders turns every hidden ladder into a Ladder and returns
// the cells that changed.
func (g *Grid) RevealHiddenLadders() []Coord {
	revealed := g.HiddenLadders()
	for _, c := range revealed {
		g.cells[g.index(c.I, c.J)] = Ladder
		g.NotifyCellChanged(c.I, c.J)
	}
	g.hiddenLadders = nil
	return revealed
}

// CountNuggets returns the number of Nugget cells on the grid.
func (g *Grid) CountNuggets() int {
	n := 0
	for j := 1; j <= g.h; j++ {
		for i := 1; i <= g.w; i++ {
			if g.Cell(i, j) == Nugget {
				n++
			}
		}
	}
	return n
}
