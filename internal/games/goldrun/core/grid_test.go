package core

import (
	"math/rand"
	"testing"
)

func gridFromRows(rows ...string) *Grid {
	g := NewGrid(len(rows[0]), len(rows))
	for j, row := range rows {
		for i := 0; i < len(row); i++ {
			t, _ := ParseCode(row[i])
			if t == HeroStart || t == EnemyStart {
				t = Free
			}
			g.SetCell(i+1, j+1, t)
		}
	}
	g.CalculateAccess(false)
	return g
}

func passable(t CellType) bool {
	return t != Brick && t != Concrete && t != UsedHole
}

func TestGridBorderIsConcrete(t *testing.T) {
	g := NewGrid(5, 3)

	for i := -1; i <= 7; i++ {
		for _, j := range []int{-1, 0, 4, 5} {
			if got := g.Cell(i, j); got != Concrete {
				t.Errorf("Cell(%d,%d) = %v, want concrete", i, j, got)
			}
		}
	}
	for j := 1; j <= 3; j++ {
		for _, i := range []int{0, 6} {
			if got := g.Cell(i, j); got != Concrete {
				t.Errorf("Cell(%d,%d) = %v, want concrete", i, j, got)
			}
		}
		for i := 1; i <= 5; i++ {
			if got := g.Cell(i, j); got != Free {
				t.Errorf("Cell(%d,%d) = %v, want free", i, j, got)
			}
		}
	}
}

func TestGridOutOfRangeReadsAreSafe(t *testing.T) {
	g := NewGrid(2, 1)

	for _, c := range []Coord{C(-100, 0), C(0, -100), C(1000, 1), C(1, 1000)} {
		if g.Cell(c.I, c.J) != Concrete {
			t.Errorf("Cell%v should be concrete", c)
		}
		if g.HeroAccess(c.I, c.J) != 0 || g.EnemyAccess(c.I, c.J) != 0 {
			t.Errorf("access at %v should be empty", c)
		}
		if g.DigStage(c.I, c.J) != 0 {
			t.Errorf("dig stage at %v should be 0", c)
		}
	}
	g.SetCell(0, 0, Free)
	if g.Cell(0, 0) != Concrete {
		t.Error("writes outside the grid must be ignored")
	}
}

func TestCanGoUpRequiresLadderAndOpenCellAbove(t *testing.T) {
	g := gridFromRows(
		"H M H",
		"H H H",
		"HMH H",
		"H H  ",
		"XXXXX",
	)

	for j := 1; j <= g.Height(); j++ {
		for i := 1; i <= g.Width(); i++ {
			want := g.Cell(i, j) == Ladder && passable(g.Cell(i, j-1))
			if got := g.HeroAccess(i, j).Has(CanGoUp); got != want {
				t.Errorf("CanGoUp at (%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}

	// Top row ladders lead into the border.
	if g.HeroAccess(1, 1).Has(CanGoUp) {
		t.Error("ladder on the top row must not lead up into the border")
	}
	// Brick above blocks the ladder at (3,2).
	if g.HeroAccess(3, 2).Has(CanGoUp) {
		t.Error("ladder under a brick must not allow climbing")
	}
	if !g.HeroAccess(1, 4).Has(CanGoUp) {
		t.Error("ladder at the bottom should allow climbing")
	}
}

func TestStandAndFallFlags(t *testing.T) {
	g := gridFromRows(
		"  T  ",
		"F HN ",
		"MXHMM",
	)

	tests := []struct {
		name  string
		at    Coord
		stand bool
		down  bool
	}{
		{"above false brick", C(1, 1), false, true},
		{"false brick over brick", C(1, 2), true, false},
		{"bar", C(3, 1), true, true},
		{"ladder", C(3, 2), true, true},
		{"free over concrete", C(2, 2), true, false},
		{"nugget over brick", C(4, 2), true, false},
		{"free over free", C(5, 1), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := g.HeroAccess(tt.at.I, tt.at.J)
			if got := acc.Has(CanStand); got != tt.stand {
				t.Errorf("CanStand = %v, want %v", got, tt.stand)
			}
			if got := acc.Has(CanGoDown); got != tt.down {
				t.Errorf("CanGoDown = %v, want %v", got, tt.down)
			}
		})
	}
}

func TestHolesBlockEnemiesSidewaysUnlessRunThrough(t *testing.T) {
	g := gridFromRows(
		"  ",
		" M",
		"XX",
	)
	g.SetCell(2, 2, Hole)

	if g.EnemyAccess(1, 2).Has(CanGoRight) {
		t.Error("enemy should not enter a hole sideways")
	}
	if !g.HeroAccess(1, 2).Has(CanGoRight) {
		t.Error("hero should enter a hole sideways")
	}

	g.CalculateAccess(true)
	if !g.EnemyAccess(1, 2).Has(CanGoRight) {
		t.Error("enemy should run through a hole when allowed")
	}

	g.UseHole(2, 2)
	if g.HeroAccess(1, 2).Has(CanGoRight) {
		t.Error("an occupied hole is not enterable")
	}
	if !g.HeroAccess(2, 1).Has(CanStand) {
		t.Error("an occupied hole supports whoever is above it")
	}
	g.ReleaseHole(2, 2)
	if g.HeroAccess(2, 1).Has(CanStand) {
		t.Error("a released hole no longer supports")
	}
}

// Flags maintained through SetCell must match a full recompute.
func TestIncrementalAccessMatchesFullRecompute(t *testing.T) {
	types := []CellType{Free, Free, Brick, FalseBrick, Concrete, Ladder, HiddenLadder, Bar, Nugget, Hole}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		g := NewGrid(8, 6)
		for j := 1; j <= 6; j++ {
			for i := 1; i <= 8; i++ {
				g.SetCell(i, j, types[rng.Intn(len(types))])
			}
		}
		g.CalculateAccess(round%2 == 0)

		for n := 0; n < 40; n++ {
			g.SetCell(1+rng.Intn(8), 1+rng.Intn(6), types[rng.Intn(len(types))])
		}

		fresh := NewGrid(8, 6)
		for j := 1; j <= 6; j++ {
			for i := 1; i <= 8; i++ {
				fresh.cells[fresh.index(i, j)] = g.Cell(i, j)
			}
		}
		fresh.CalculateAccess(round%2 == 0)

		for j := 1; j <= 6; j++ {
			for i := 1; i <= 8; i++ {
				if g.HeroAccess(i, j) != fresh.HeroAccess(i, j) {
					t.Fatalf("round %d: stale hero flags at (%d,%d): %06b vs %06b",
						round, i, j, g.HeroAccess(i, j), fresh.HeroAccess(i, j))
				}
				if g.EnemyAccess(i, j) != fresh.EnemyAccess(i, j) {
					t.Fatalf("round %d: stale enemy flags at (%d,%d)", round, i, j)
				}
				want := g.Cell(i, j) == Ladder && passable(g.Cell(i, j-1))
				if g.HeroAccess(i, j).Has(CanGoUp) != want {
					t.Fatalf("round %d: CanGoUp wrong at (%d,%d)", round, i, j)
				}
			}
		}
	}
}

func TestDigCycleReturnsToBrick(t *testing.T) {
	g := gridFromRows(
		"  ",
		"MM",
	)
	const lifetime = 60

	for cycle := 0; cycle < 3; cycle++ {
		if !g.Dig(1, 2, lifetime) {
			t.Fatalf("cycle %d: dig refused", cycle)
		}
		if g.Dig(1, 2, lifetime) {
			t.Fatalf("cycle %d: digging a brick twice should be refused", cycle)
		}

		seen := map[int]bool{1: true}
		closed := 0
		for tick := 1; tick <= lifetime; tick++ {
			for _, ch := range g.AdvanceDigs() {
				if ch.Closed {
					closed++
					continue
				}
				seen[ch.Stage] = true
			}
			stage := g.DigStage(1, 2)
			switch {
			case tick == lifetime:
			case stage < DigStageOpen:
				if g.Cell(1, 2) != Brick || g.HeroAccess(1, 1).Has(CanGoDown) {
					t.Fatalf("tick %d: an opening brick must still block", tick)
				}
			default:
				if g.Cell(1, 2) != Hole || !g.HeroAccess(1, 1).Has(CanGoDown) {
					t.Fatalf("tick %d: stage %d should be an enterable hole", tick, stage)
				}
			}
		}

		if g.Cell(1, 2) != Brick || g.DigStage(1, 2) != 0 {
			t.Fatalf("cycle %d: got %v stage %d, want brick stage 0", cycle, g.Cell(1, 2), g.DigStage(1, 2))
		}
		if closed != 1 {
			t.Errorf("cycle %d: closed reported %d times", cycle, closed)
		}
		for stage := 1; stage <= DigStageLast; stage++ {
			if !seen[stage] {
				t.Errorf("cycle %d: stage %d never reached", cycle, stage)
			}
		}
		if g.HeroAccess(1, 1).Has(CanGoDown) {
			t.Errorf("cycle %d: regrown brick should block again", cycle)
		}
		if g.Digging() != 0 {
			t.Errorf("cycle %d: %d digs still active", cycle, g.Digging())
		}
	}
}

func TestDigRefusesNonBrick(t *testing.T) {
	g := gridFromRows("XF H")

	for i := 1; i <= 4; i++ {
		if g.Dig(i, 1, 100) {
			t.Errorf("dig at (%d,1) on %v should be refused", i, g.Cell(i, 1))
		}
	}
}

func TestRevealHiddenLadders(t *testing.T) {
	g := gridFromRows(
		"Z  ",
		"Z H",
		"XXX",
	)

	if g.HeroAccess(1, 2).Has(CanGoUp) {
		t.Error("hidden ladder must not be climbable")
	}
	if got := len(g.HiddenLadders()); got != 2 {
		t.Fatalf("hidden ladders = %d, want 2", got)
	}

	revealed := g.RevealHiddenLadders()
	if len(revealed) != 2 {
		t.Fatalf("revealed %d ladders, want 2", len(revealed))
	}
	if g.Cell(1, 1) != Ladder || g.Cell(1, 2) != Ladder {
		t.Error("hidden ladders should now be ladders")
	}
	if !g.HeroAccess(1, 2).Has(CanGoUp) {
		t.Error("revealed ladder should be climbable")
	}
	if again := g.RevealHiddenLadders(); len(again) != 0 {
		t.Errorf("second reveal changed %d cells", len(again))
	}
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []string{
		"M HN",
		"XTZF",
	}
	g := gridFromRows(rows...)

	got := g.Rows()
	for j := range rows {
		if got[j] != rows[j] {
			t.Errorf("row %d = %q, want %q", j+1, got[j], rows[j])
		}
	}
}
