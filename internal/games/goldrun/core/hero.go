package core

// Hero is the player's runner. It moves toward a target cell set by the
// pointer and digs on request.
type Hero struct {
	Runner
	target Coord
}

func newHero(at Coord, ppc int) *Hero {
	return &Hero{Runner: newRunner(at, ppc, false), target: at}
}

// Target returns the cell the hero is heading for.
func (h *Hero) Target() Coord {
	return h.target
}

func (h *Hero) step(lp *LevelPlayer) {
	g := lp.grid
	if h.AtBoundary() {
		switch {
		case !lp.supported(&h.Runner):
			if h.Status != Falling {
				h.Dir, h.Status = Down, Falling
				lp.sound(CueFall)
			}
		default:
			d := h.chooseDirection(lp)
			if d == Stand {
				if h.Status != Standing {
					h.stop()
					lp.animate(HeroSprite, &h.Runner, false, 0)
				}
				return
			}
			h.start(d, g)
		}
	} else if lp.rules.TurnAnywhere {
		h.turnToward(h.target)
	}

	interval := h.interval(lp.timing)
	if !h.due(interval) {
		return
	}
	if h.AtBoundary() {
		lp.animate(HeroSprite, &h.Runner, false, interval)
	}
	if h.advance() {
		h.enterCell(lp)
	}
}

// chooseDirection prefers vertical moves toward the target, then
// horizontal ones.
func (h *Hero) chooseDirection(lp *LevelPlayer) Direction {
	acc := h.access(lp.grid)
	onRunner := !acc.Has(CanStand)
	di, dj := h.target.I-h.I, h.target.J-h.J
	switch {
	case dj < 0 && acc.Has(CanGoUp):
		return Up
	case dj > 0 && acc.Has(CanGoDown) && !onRunner:
		return Down
	case di < 0 && acc.Has(CanGoLeft):
		return Left
	case di > 0 && acc.Has(CanGoRight):
		return Right
	}
	return Stand
}

func (h *Hero) enterCell(lp *LevelPlayer) {
	g := lp.grid
	lp.exitDue = true
	if g.Cell(h.I, h.J) == Nugget {
		g.SetCell(h.I, h.J, Free)
		lp.paint(h.I, h.J)
		lp.collectNugget(h.Cell())
	}
	if h.Status != Falling {
		lp.sound(CueStep)
	}
}

// dig opens the brick below and beside the hero. While striding in the
// same direction the hero digs one cell further ahead.
func (h *Hero) dig(lp *LevelPlayer, d Direction) bool {
	if h.Status == Falling || !h.AtBoundary() && !h.Dir.Horizontal() {
		return false
	}
	di, _ := d.Delta()
	i, j := h.I+di, h.J+1
	if !h.AtBoundary() && h.Dir == d {
		i += di
	}

	g := lp.grid
	if g.Cell(i, j) != Brick || g.DigStage(i, j) != 0 {
		return false
	}
	switch g.Cell(i, j-1) {
	case Free, Hole, HiddenLadder:
	default:
		return false
	}
	if lp.enemyIn(i, j-1) {
		return false
	}
	if !g.Dig(i, j, lp.timing.BrickLifetime) {
		return false
	}
	lp.paint(i, j)
	lp.sound(CueDig)
	return true
}

// turnToward reverses a mid-cell move when the target lies behind.
func (r *Runner) turnToward(target Coord) {
	if r.Status == Falling || r.AtBoundary() {
		return
	}
	x, y := r.Point()
	tx, ty := target.I*r.ppc, target.J*r.ppc
	switch r.Dir {
	case Left:
		if tx > x {
			r.reverse()
		}
	case Right:
		if tx < x {
			r.reverse()
		}
	case Up:
		if ty > y {
			r.reverse()
		}
	case Down:
		if ty < y {
			r.reverse()
		}
	}
}
