package core

// Status is what a runner is doing.
type Status int

const (
	Standing Status = iota
	Running
	Hanging
	Climbing
	Falling
	Captive
)

func (s Status) String() string {
	switch s {
	case Standing:
		return "standing"
	case Running:
		return "running"
	case Hanging:
		return "hanging"
	case Climbing:
		return "climbing"
	case Falling:
		return "falling"
	case Captive:
		return "captive"
	}
	return "unknown"
}

// Runner is the movement state shared by the hero and enemies. A runner is
// at cell (I, J) plus Progress points along Dir; Progress is always below
// the rules' points per cell, and zero means it is on a cell boundary.
type Runner struct {
	I        int
	J        int
	Progress int
	Dir      Direction
	Status   Status
	Nuggets  int

	ppc   int
	wait  int
	enemy bool
}

func newRunner(at Coord, ppc int, enemy bool) Runner {
	return Runner{I: at.I, J: at.J, ppc: ppc, enemy: enemy}
}

// Cell returns the cell the runner is leaving, or standing in.
func (r *Runner) Cell() Coord {
	return C(r.I, r.J)
}

// Point returns the runner's position in points.
func (r *Runner) Point() (x, y int) {
	di, dj := r.Dir.Delta()
	return r.I*r.ppc + di*r.Progress, r.J*r.ppc + dj*r.Progress
}

// NearestCell returns the cell the runner mostly overlaps.
func (r *Runner) NearestCell() Coord {
	if r.Progress*2 <= r.ppc {
		return r.Cell()
	}
	di, dj := r.Dir.Delta()
	return C(r.I+di, r.J+dj)
}

// AtBoundary reports whether the runner is exactly on a cell.
func (r *Runner) AtBoundary() bool {
	return r.Progress == 0
}

func (r *Runner) access(g *Grid) Access {
	if r.enemy {
		return g.EnemyAccess(r.I, r.J)
	}
	return g.HeroAccess(r.I, r.J)
}

// due counts down the step timer and reports whether the runner may move
// one point this tick.
func (r *Runner) due(interval int) bool {
	if r.wait > 1 {
		r.wait--
		return false
	}
	r.wait = interval
	return true
}

// start sets the runner moving in d from its current cell.
func (r *Runner) start(d Direction, g *Grid) {
	r.Dir = d
	here := g.Cell(r.I, r.J)
	switch d {
	case Left, Right:
		if here == Bar {
			r.Status = Hanging
		} else {
			r.Status = Running
		}
	case Up:
		r.Status = Climbing
	case Down:
		if here == Ladder || g.Cell(r.I, r.J+1) == Ladder {
			r.Status = Climbing
		} else {
			r.Status = Falling
		}
	default:
		r.stop()
	}
}

func (r *Runner) stop() {
	r.Dir = Stand
	r.Status = Standing
	r.Progress = 0
	r.wait = 0
}

// advance moves one point along Dir and reports whether a new cell was
// reached.
func (r *Runner) advance() bool {
	r.Progress++
	if r.Progress < r.ppc {
		return false
	}
	di, dj := r.Dir.Delta()
	r.I += di
	r.J += dj
	r.Progress = 0
	return true
}

// reverse turns the runner around mid-cell, keeping its point position.
func (r *Runner) reverse() {
	if r.Progress == 0 {
		r.Dir = r.Dir.Opposite()
		return
	}
	di, dj := r.Dir.Delta()
	r.I += di
	r.J += dj
	r.Progress = r.ppc - r.Progress
	r.Dir = r.Dir.Opposite()
}

func (r *Runner) anim(g *Grid) Anim {
	switch r.Status {
	case Running:
		if r.Dir == Left {
			return AnimRunLeft
		}
		return AnimRunRight
	case Hanging:
		if r.Dir == Left {
			return AnimBarLeft
		}
		return AnimBarRight
	case Climbing:
		return AnimClimb
	case Falling:
		return AnimFall
	case Captive:
		return AnimCaptive
	}
	if g.Cell(r.I, r.J) == Bar {
		return AnimBarRight
	}
	return AnimStand
}

func (r *Runner) interval(t Timing) int {
	switch {
	case r.enemy && r.Status == Falling:
		return t.EnemyFall
	case r.enemy:
		return t.EnemyRun
	case r.Status == Falling:
		return t.HeroFall
	default:
		return t.HeroRun
	}
}
