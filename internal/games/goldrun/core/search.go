package core

// TraditionalSearch scans the enemy's row for the ladder or drop that gains
// the most height toward the hero, then walks to it.
type TraditionalSearch struct{}

// FindBestDirection implements Searcher.
func (TraditionalSearch) FindBestDirection(_ *SearchState, from, hero Coord, g *Grid) Direction {
	if closedIn(g, from, hero) {
		return Stand
	}
	if from.J == hero.J {
		if d, ok := straightRun(g, from, hero.I); ok {
			return d
		}
	}

	left, right := rowExtent(g, from)
	if hero.J != from.J {
		best, gain := -1, 0
		for x := left; x <= right; x++ {
			n := routeGain(g, x, from.J, hero.J)
			if n <= 0 {
				continue
			}
			if gain < n || gain == n && closer(x, best, from.I, hero.I) {
				best, gain = x, n
			}
		}
		if best >= 0 {
			return toward(from, best, verticalToward(from.J, hero.J))
		}
	}

	// Nothing gains height; take any way down.
	if x, ok := nearestWith(g, from, left, right, CanGoDown); ok {
		return toward(from, x, Down)
	}

	acc := g.EnemyAccess(from.I, from.J)
	switch {
	case hero.I < from.I && acc.Has(CanGoLeft):
		return Left
	case hero.I > from.I && acc.Has(CanGoRight):
		return Right
	}
	return Stand
}

// AlternateSearch pursues along one axis at a time and flips the axis when
// that fails or another enemy blocks the way.
type AlternateSearch struct{}

// FindBestDirection implements Searcher.
func (AlternateSearch) FindBestDirection(st *SearchState, from, hero Coord, g *Grid) Direction {
	if closedIn(g, from, hero) {
		return Stand
	}
	if st.Blocked {
		st.Vertical = !st.Vertical
		st.Blocked = false
	}
	for range 2 {
		var d Direction
		if st.Vertical {
			d = verticalPursuit(g, from, hero)
		} else {
			d = horizontalPursuit(g, from, hero)
		}
		if d != Stand {
			return d
		}
		st.Vertical = !st.Vertical
	}
	return Stand
}

func verticalPursuit(g *Grid, from, hero Coord) Direction {
	if hero.J == from.J {
		return Stand
	}
	d := verticalToward(from.J, hero.J)
	want := d.flag()
	if g.EnemyAccess(from.I, from.J).Has(want) {
		return d
	}
	left, right := rowExtent(g, from)
	if x, ok := nearestWith(g, from, left, right, want); ok && x != from.I {
		return toward(from, x, d)
	}
	return Stand
}

func horizontalPursuit(g *Grid, from, hero Coord) Direction {
	if hero.I == from.I {
		return Stand
	}
	d := Left
	if hero.I > from.I {
		d = Right
	}
	want := d.flag()
	if g.EnemyAccess(from.I, from.J).Has(want) {
		return d
	}

	// Blocked sideways: look up and down the ladder for a row that opens.
	up, down := from.J, from.J
	upOpen := g.EnemyAccess(from.I, from.J).Has(CanGoUp)
	downOpen := g.EnemyAccess(from.I, from.J).Has(CanGoDown)
	for upOpen || downOpen {
		if upOpen {
			up--
			acc := g.EnemyAccess(from.I, up)
			if acc.Has(want) {
				return Up
			}
			upOpen = acc.Has(CanGoUp)
		}
		if downOpen {
			down++
			acc := g.EnemyAccess(from.I, down)
			if acc.Has(want) {
				return Down
			}
			downOpen = acc.Has(CanGoDown) && acc.Has(CanStand)
		}
	}
	return Stand
}

// closedIn reports whether the enemy is on the hero's cell or right next to
// it on the same row with nothing in between.
func closedIn(g *Grid, from, hero Coord) bool {
	if from == hero {
		return true
	}
	if from.J != hero.J || abs(from.I-hero.I) != 1 {
		return false
	}
	d := Left
	if hero.I > from.I {
		d = Right
	}
	return g.EnemyAccess(from.I, from.J).Has(d.flag())
}

// straightRun reports the direction along the row toward column ti when
// the path is walkable without falling.
func straightRun(g *Grid, from Coord, ti int) (Direction, bool) {
	d, step := Left, -1
	if ti > from.I {
		d, step = Right, 1
	}
	flag := d.flag()
	for x := from.I; x != ti; x += step {
		if !g.EnemyAccess(x, from.J).Has(flag) {
			return Stand, false
		}
		if x+step != ti && !g.EnemyAccess(x+step, from.J).Has(CanStand) {
			return Stand, false
		}
	}
	return d, true
}

// rowExtent returns the leftmost and rightmost columns the enemy can reach
// by walking along its row. A column it would fall from ends the scan but
// is included.
func rowExtent(g *Grid, from Coord) (left, right int) {
	left, right = from.I, from.I
	if !g.EnemyAccess(from.I, from.J).Has(CanStand) {
		return left, right
	}
	for g.EnemyAccess(left, from.J).Has(CanGoLeft) {
		left--
		if !g.EnemyAccess(left, from.J).Has(CanStand) {
			break
		}
	}
	for g.EnemyAccess(right, from.J).Has(CanGoRight) {
		right++
		if !g.EnemyAccess(right, from.J).Has(CanStand) {
			break
		}
	}
	return left, right
}

// routeGain returns the number of rows gained toward heroJ by leaving row j
// vertically at column x. Height beyond the hero's row does not count.
func routeGain(g *Grid, x, j, heroJ int) int {
	acc := g.EnemyAccess(x, j)
	if heroJ < j {
		if !acc.Has(CanGoUp) {
			return 0
		}
		y := j
		for y > heroJ && g.EnemyAccess(x, y).Has(CanGoUp) {
			y--
		}
		return j - y
	}
	if !acc.Has(CanGoDown) {
		return 0
	}
	y := j
	for g.EnemyAccess(x, y).Has(CanGoDown) {
		y++
		if y >= heroJ && g.EnemyAccess(x, y).Has(CanStand) {
			break
		}
	}
	return min(y, heroJ) - j
}

// nearestWith returns the column within [left, right] closest to from that
// carries flag. Ties go to the left.
func nearestWith(g *Grid, from Coord, left, right int, flag Access) (int, bool) {
	for dist := 0; from.I-dist >= left || from.I+dist <= right; dist++ {
		if x := from.I - dist; x >= left && g.EnemyAccess(x, from.J).Has(flag) {
			return x, true
		}
		if x := from.I + dist; x <= right && g.EnemyAccess(x, from.J).Has(flag) {
			return x, true
		}
	}
	return 0, false
}

// closer reports whether column x beats the current best: the enemy's own
// column first, then the nearer one, then the one on the hero's side.
func closer(x, best, fromI, heroI int) bool {
	if best < 0 {
		return true
	}
	if x == fromI || best == fromI {
		return x == fromI
	}
	dx, db := abs(x-fromI), abs(best-fromI)
	if dx != db {
		return dx < db
	}
	return abs(x-heroI) < abs(best-heroI)
}

func toward(from Coord, x int, arrived Direction) Direction {
	switch {
	case x < from.I:
		return Left
	case x > from.I:
		return Right
	}
	return arrived
}

func verticalToward(fromJ, heroJ int) Direction {
	if heroJ < fromJ {
		return Up
	}
	return Down
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
