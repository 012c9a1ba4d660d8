package core

type escapeState int

const (
	notEscaping escapeState = iota
	climbingOut             // moving up out of a hole
	leavingHole             // above the hole, must step sideways
)

// Enemy is a computer-controlled runner. Ids are assigned in layout order
// and decide who yields when two enemies overlap.
type Enemy struct {
	Runner
	ID    int
	Birth Coord

	search  SearchState
	captive int
	escape  escapeState
}

func newEnemy(id int, at Coord, ppc int) *Enemy {
	return &Enemy{Runner: newRunner(at, ppc, true), ID: id, Birth: at}
}

// Carrying reports whether the enemy holds gold.
func (e *Enemy) Carrying() bool {
	return e.Nuggets > 0
}

func (e *Enemy) sprite() int {
	return e.ID + 1
}

func (e *Enemy) step(lp *LevelPlayer) {
	if e.Status == Captive {
		if e.captive > 0 {
			e.captive--
			return
		}
		if !e.climbOut(lp) {
			return
		}
	}

	if e.AtBoundary() && e.escape != climbingOut {
		e.decide(lp)
	} else if lp.rules.TurnAnywhere && e.Dir.Horizontal() && lp.hero.J == e.J {
		e.turnToward(lp.hero.Cell())
	}
	if e.Dir == Stand {
		return
	}

	interval := e.interval(lp.timing)
	if !e.due(interval) {
		return
	}
	if lp.enemyBlocked(e) {
		e.search.Blocked = true
		return
	}
	if e.AtBoundary() {
		lp.animate(e.sprite(), &e.Runner, e.Carrying(), interval)
	}
	if e.advance() {
		e.enterCell(lp)
	}
}

func (e *Enemy) decide(lp *LevelPlayer) {
	g := lp.grid
	if e.escape == leavingHole {
		if e.sidestep(lp) {
			return
		}
		// Shut in on both sides: search, but stay off the hole until it closes.
		if g.Cell(e.I, e.J+1) != Hole {
			e.escape = notEscaping
		}
	}
	if e.escape != leavingHole && !lp.supported(&e.Runner) {
		e.Dir, e.Status = Down, Falling
		return
	}

	d := lp.rules.FindBestDirection(&e.search, e.Cell(), lp.hero.Cell(), g)
	if d != Stand && !e.access(g).Has(d.flag()) {
		d = Stand
	}
	if d == Down && e.escape == leavingHole {
		d = Stand
	}
	if d == Stand {
		if e.Status != Standing {
			e.stop()
			lp.animate(e.sprite(), &e.Runner, e.Carrying(), 0)
		}
		return
	}
	e.start(d, g)
}

// sidestep moves an enemy that has just climbed out of a hole off to one
// side, toward the hero when both sides are open. It reports false when
// both sides are shut.
func (e *Enemy) sidestep(lp *LevelPlayer) bool {
	acc := e.access(lp.grid)
	first, second := Left, Right
	if lp.hero.I > e.I {
		first, second = Right, Left
	}
	switch {
	case acc.Has(first.flag()):
		e.start(first, lp.grid)
	case acc.Has(second.flag()):
		e.start(second, lp.grid)
	default:
		return false
	}
	return true
}

func (e *Enemy) climbOut(lp *LevelPlayer) bool {
	g := lp.grid
	switch g.Cell(e.I, e.J-1) {
	case Brick, Concrete, UsedHole:
		return false
	}
	if lp.enemyIn(e.I, e.J-1) {
		return false
	}
	if g.ReleaseHole(e.I, e.J) {
		lp.paint(e.I, e.J)
	}
	e.escape = climbingOut
	e.Dir, e.Status = Up, Climbing
	e.wait = 0
	return true
}

func (e *Enemy) enterCell(lp *LevelPlayer) {
	g := lp.grid
	switch e.escape {
	case climbingOut:
		e.escape = leavingHole
	case leavingHole:
		e.escape = notEscaping
	}

	here := g.Cell(e.I, e.J)
	if here == Hole && e.Dir == Down {
		lp.trapEnemy(e)
		return
	}
	if here == Nugget && !e.Carrying() {
		if lp.pickUp() {
			g.SetCell(e.I, e.J, Free)
			lp.paint(e.I, e.J)
			e.Nuggets = 1
			lp.emit(GoldTaken{EnemyID: e.ID, At: e.Cell()})
		}
		return
	}
	if !e.Carrying() {
		return
	}
	if here == Free && e.Status != Falling && e.access(g).Has(CanStand) && lp.dropRoll() {
		g.SetCell(e.I, e.J, Nugget)
		lp.paint(e.I, e.J)
		e.Nuggets = 0
		lp.emit(GoldDropped{EnemyID: e.ID, At: e.Cell()})
	}
}

// respawnAt puts the enemy back in play at c.
func (e *Enemy) respawnAt(c Coord) {
	e.I, e.J = c.I, c.J
	e.stop()
	e.Nuggets = 0
	e.captive = 0
	e.escape = notEscaping
	e.search = SearchState{}
}
