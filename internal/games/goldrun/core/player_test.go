package core

import (
	"testing"
)

// fixedRand always returns v, clamped to the requested range.
type fixedRand int

func (r fixedRand) Intn(n int) int { return min(int(r), n-1) }

func newTestPlayer(t *testing.T, rules string, rng Rand, rows ...string) (*LevelPlayer, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	opts := DefaultOptions()
	opts.Sink = rec
	opts.Rand = rng
	lp, err := NewLevelPlayer(&Level{ID: "test", Rules: rules, Layout: rows}, opts)
	if err != nil {
		t.Fatalf("NewLevelPlayer: %v", err)
	}
	lp.Start()
	return lp, rec
}

func runTicks(lp *LevelPlayer, n int) Outcome {
	for i := 0; i < n; i++ {
		if lp.Tick(false) != Playing {
			break
		}
	}
	return lp.Outcome()
}

func indexOf[T Event](events []Event) int {
	for i, ev := range events {
		if _, ok := ev.(T); ok {
			return i
		}
	}
	return -1
}

func TestHeroCollectsGoldOnSingleRow(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil, "R   N    H")
	lp.SetHeroTarget(5, 1)

	if got := runTicks(lp, 200); got != Completed {
		t.Fatalf("outcome = %v, want completed", got)
	}
	if got := lp.Hero().Cell(); got != C(5, 1) {
		t.Errorf("hero at %v, want (5,1)", got)
	}
	if lp.NuggetsLeft() != 0 {
		t.Errorf("nuggets left = %d", lp.NuggetsLeft())
	}
	if lp.Grid().Cell(5, 1) != Free {
		t.Error("collected nugget should leave a free cell")
	}
	want := DefaultScoring().Nugget + DefaultScoring().LevelComplete
	if lp.Score() != want {
		t.Errorf("score = %d, want %d", lp.Score(), want)
	}

	collected := indexOf[NuggetCollected](rec.Events)
	complete := indexOf[LevelComplete](rec.Events)
	if collected < 0 || complete < 0 || complete < collected {
		t.Errorf("collected at %d, complete at %d", collected, complete)
	}
	// Four cells at one point every two ticks, starting on the first tick.
	if ticks := lp.Ticks(); ticks != 31 {
		t.Errorf("completed after %d ticks, want 31", ticks)
	}
}

func TestHeroClimbsRevealedLadderToFinish(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil,
		"    Z",
		"R N H",
		"XXXXX",
	)
	lp.SetHeroTarget(5, 1)

	if got := runTicks(lp, 400); got != Completed {
		t.Fatalf("outcome = %v, want completed", got)
	}
	if got := lp.Hero().Cell(); got != C(5, 1) {
		t.Errorf("hero at %v, want (5,1)", got)
	}

	revealed := EventsOf[HiddenLaddersRevealed](rec)
	if len(revealed) != 1 || len(revealed[0].Cells) != 1 || revealed[0].Cells[0] != C(5, 1) {
		t.Fatalf("revealed = %+v", revealed)
	}
	if indexOf[HiddenLaddersRevealed](rec.Events) > indexOf[LevelComplete](rec.Events) {
		t.Error("ladders should appear before the level completes")
	}
	if lp.Grid().Cell(5, 1) != Ladder {
		t.Error("hidden ladder should now be a ladder")
	}
}

func TestLevelNotCompleteWithGoldLeft(t *testing.T) {
	lp, _ := newTestPlayer(t, RulesTraditional, nil,
		"    H",
		"R   H",
		"XXXXN",
	)
	lp.SetHeroTarget(5, 1)

	if got := runTicks(lp, 300); got != Playing {
		t.Fatalf("outcome = %v, want playing", got)
	}
	if got := lp.Hero().Cell(); got != C(5, 1) {
		t.Errorf("hero at %v, want (5,1)", got)
	}
}

func TestEnemyWalksUpToHeroAndCatches(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil,
		"R     E",
		"XXXXXXX",
	)
	e := lp.Enemies()[0]
	ppc := e.ppc

	for i := 0; i < 500 && lp.Outcome() == Playing; i++ {
		lp.Tick(false)
		if x, _ := e.Point(); x < 2*ppc {
			t.Fatalf("tick %d: enemy entered the hero's cell (x=%d)", lp.Ticks(), x)
		}
	}
	if lp.Outcome() != HeroDied {
		t.Fatalf("outcome = %v, want hero-died", lp.Outcome())
	}
	if got := e.Cell(); got != C(2, 1) {
		t.Errorf("enemy at %v, want (2,1)", got)
	}
	caught := EventsOf[HeroCaught](rec)
	if len(caught) != 1 || caught[0].EnemyID != 0 {
		t.Errorf("caught events = %+v", caught)
	}
}

func TestEnemiesKeepApartHeadOn(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil,
		"E         E",
		"XXXXXXXXXXX",
		"     R     ",
		"XXXXXXXXXXX",
	)
	e0, e1 := lp.Enemies()[0], lp.Enemies()[1]
	ppc := e0.ppc

	for i := 0; i < 400; i++ {
		lp.Tick(false)
		x0, _ := e0.Point()
		x1, _ := e1.Point()
		if x1-x0 < 2*ppc {
			t.Fatalf("tick %d: enemies %d points apart, want at least %d", lp.Ticks(), x1-x0, 2*ppc)
		}
	}
	x0, _ := e0.Point()
	x1, _ := e1.Point()
	if x0 == ppc || x1 == 11*ppc {
		t.Errorf("enemies never moved: x0=%d x1=%d", x0, x1)
	}
	if len(EventsOf[HeroCaught](rec)) != 0 {
		t.Error("hero out of reach should not be caught")
	}
}

func TestOverlappingEnemiesLowerIDMoves(t *testing.T) {
	lp, _ := newTestPlayer(t, RulesTraditional, nil,
		"E  E   R",
		"XXXXXXXX",
	)
	e0, e1 := lp.Enemies()[0], lp.Enemies()[1]
	e1.respawnAt(e0.Cell())
	e0.Dir, e1.Dir = Right, Right

	if lp.enemyBlocked(e0) {
		t.Error("enemy 0 should be free to move")
	}
	if !lp.enemyBlocked(e1) {
		t.Error("enemy 1 should yield to enemy 0")
	}

	lp.Tick(false)
	if e0.Progress != 1 {
		t.Errorf("enemy 0 progress = %d, want 1", e0.Progress)
	}
	if e1.Progress != 0 || e1.Cell() != e0.Cell() {
		t.Errorf("enemy 1 moved: %v progress %d", e1.Cell(), e1.Progress)
	}
}

func TestDigAheadWhileWalking(t *testing.T) {
	t.Run("standing digs beside", func(t *testing.T) {
		lp, _ := newTestPlayer(t, RulesTraditional, nil,
			"R     ",
			"MMMMMM",
			"XXXXXX",
		)
		if !lp.DigRight() {
			t.Fatal("dig refused")
		}
		if lp.Grid().DigStage(2, 2) != 1 {
			t.Error("brick at (2,2) should be dug")
		}
	})

	t.Run("walking digs one further", func(t *testing.T) {
		lp, rec := newTestPlayer(t, RulesTraditional, nil,
			"R     ",
			"MMMMMM",
			"XXXXXX",
		)
		lp.SetHeroTarget(6, 1)
		lp.Tick(false)
		h := lp.Hero()
		if h.Progress == 0 || h.Dir != Right {
			t.Fatalf("hero should be mid-stride right: %+v", h.Runner)
		}

		rec.Reset()
		if !lp.DigRight() {
			t.Fatal("dig refused")
		}
		if lp.Grid().DigStage(3, 2) != 1 {
			t.Error("brick at (3,2) should be dug")
		}
		if lp.Grid().DigStage(2, 2) != 0 {
			t.Error("brick below the hero's next cell must be left alone")
		}
		painted := EventsOf[CellPainted](rec)
		if len(painted) != 1 || painted[0].At != C(3, 2) || painted[0].DigStage != 1 {
			t.Errorf("painted = %+v", painted)
		}
	})

	t.Run("refused under gold", func(t *testing.T) {
		lp, _ := newTestPlayer(t, RulesTraditional, nil,
			"RN",
			"MM",
		)
		if lp.DigRight() {
			t.Error("digging under gold should be refused")
		}
	})
}

func TestClosingBrickKillsHeroOnce(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil,
		"R  ",
		"MMM",
		"XXX",
	)
	if !lp.DigRight() {
		t.Fatal("dig refused")
	}
	lp.SetHeroTarget(2, 1)

	if got := runTicks(lp, 400); got != HeroDied {
		t.Fatalf("outcome = %v, want hero-died", got)
	}
	for i := 0; i < 50; i++ {
		lp.Tick(false)
	}
	caught := EventsOf[HeroCaught](rec)
	if len(caught) != 1 {
		t.Fatalf("hero caught %d times, want 1", len(caught))
	}
	if caught[0].EnemyID != -1 || caught[0].At != C(2, 2) {
		t.Errorf("caught = %+v, want crushed at (2,2)", caught[0])
	}
	if lp.Ticks() != uint64(lp.Timing().BrickLifetime) {
		t.Errorf("died at tick %d, want %d", lp.Ticks(), lp.Timing().BrickLifetime)
	}
}

func TestTrappedEnemyKilledAndRebornAtBirth(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesAlternate, nil,
		"XEX R",
		"XMXXX",
		"XXXXX",
	)
	e := lp.Enemies()[0]
	lp.timing.EnemyCaptive = 10000
	if !lp.Grid().Dig(2, 2, lp.Timing().BrickLifetime) {
		t.Fatal("dig refused")
	}

	for i := 0; i < lp.Timing().BrickLifetime+100; i++ {
		lp.Tick(false)
	}

	if n := len(EventsOf[EnemyTrapped](rec)); n != 1 {
		t.Errorf("trapped %d times, want 1", n)
	}
	killed := EventsOf[EnemyKilled](rec)
	if len(killed) != 1 || killed[0].At != C(2, 2) {
		t.Fatalf("killed = %+v", killed)
	}
	reborn := EventsOf[EnemyReborn](rec)
	if len(reborn) != 1 || reborn[0].At != e.Birth {
		t.Fatalf("reborn = %+v, want at %v", reborn, e.Birth)
	}
	if e.Cell() != C(2, 1) || e.Status != Standing {
		t.Errorf("enemy at %v %v", e.Cell(), e.Status)
	}
	if lp.Grid().Cell(2, 2) != Brick {
		t.Error("hole should have closed")
	}
	want := DefaultScoring().EnemyTrapped + DefaultScoring().EnemyKilled
	if lp.Score() != want {
		t.Errorf("score = %d, want %d", lp.Score(), want)
	}
}

func TestTrappedEnemyClimbsOut(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesAlternate, nil,
		"XEX R",
		"XMXXX",
		"XXXXX",
	)
	e := lp.Enemies()[0]
	lp.Grid().Dig(2, 2, lp.Timing().BrickLifetime)

	for i := 0; i < lp.Timing().BrickLifetime+50; i++ {
		lp.Tick(false)
	}

	if n := len(EventsOf[EnemyTrapped](rec)); n != 1 {
		t.Errorf("trapped %d times, want 1", n)
	}
	if n := len(EventsOf[EnemyKilled](rec)); n != 0 {
		t.Errorf("killed %d times, want 0", n)
	}
	if e.Cell() != C(2, 1) {
		t.Errorf("enemy at %v, want back on (2,1)", e.Cell())
	}
	if lp.Grid().Cell(2, 2) != Brick {
		t.Errorf("cell (2,2) = %v, want brick", lp.Grid().Cell(2, 2))
	}
}

func TestEnemyClimbsShaftAfterLeavingHole(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesAlternate, nil,
		"R  H  ",
		"XXXHXX",
		"XXXHXX",
		"XXXMXE",
	)
	e := lp.Enemies()[0]
	lp.Grid().SetCell(4, 4, Hole)
	e.I, e.J = 4, 4
	lp.trapEnemy(e)

	for i := 0; i < 2000 && lp.Outcome() == Playing; i++ {
		lp.Tick(false)
	}
	if lp.Outcome() != HeroDied {
		t.Fatalf("outcome = %v, enemy at %v %v, want hero-died", lp.Outcome(), e.Cell(), e.Status)
	}
	if n := len(EventsOf[EnemyTrapped](rec)); n != 1 {
		t.Errorf("trapped %d times, want 1", n)
	}
	caught := EventsOf[HeroCaught](rec)
	if len(caught) != 1 || caught[0].EnemyID != 0 {
		t.Errorf("caught events = %+v", caught)
	}
}

func TestAdjacentEnemyNeedsWayIntoHeroCell(t *testing.T) {
	tests := []struct {
		rules string
		want  Outcome
	}{
		{RulesAlternate, Playing},
		{RulesTraditional, HeroDied},
	}
	for _, tt := range tests {
		t.Run(tt.rules, func(t *testing.T) {
			lp, _ := newTestPlayer(t, tt.rules, nil,
				" R X",
				"XMEX",
				"XXXX",
			)
			lp.Grid().SetCell(2, 2, Hole)

			if got := runTicks(lp, 200); got != tt.want {
				t.Fatalf("outcome = %v, want %v", got, tt.want)
			}
			if tt.want == Playing && lp.Hero().Cell() != C(2, 2) {
				t.Errorf("hero at %v, want in the hole at (2,2)", lp.Hero().Cell())
			}
		})
	}
}

func TestGoldFreeLevelCompletesOnceHeroMoves(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil,
		"R  ",
		"XXX",
	)
	if got := runTicks(lp, 20); got != Playing {
		t.Fatalf("outcome = %v before moving, want playing", got)
	}

	lp.SetHeroTarget(2, 1)
	if got := runTicks(lp, 50); got != Completed {
		t.Fatalf("outcome = %v, want completed", got)
	}
	if got := lp.Hero().Cell(); got != C(2, 1) {
		t.Errorf("hero at %v, want (2,1)", got)
	}
	if n := len(EventsOf[LevelComplete](rec)); n != 1 {
		t.Errorf("level complete fired %d times", n)
	}
}

func TestEnemyAlwaysCollectsGold(t *testing.T) {
	var calls int
	lp, rec := newTestPlayer(t, RulesTraditional, &countingRand{Rand: fixedRand(999), calls: &calls},
		"R X  N E",
		"XXXXXXXX",
	)
	e := lp.Enemies()[0]

	for i := 0; i < 200 && len(EventsOf[GoldTaken](rec)) == 0; i++ {
		lp.Tick(false)
	}
	taken := EventsOf[GoldTaken](rec)
	if len(taken) != 1 || taken[0].At != C(6, 1) {
		t.Fatalf("taken = %+v, want at (6,1)", taken)
	}
	if calls != 0 {
		t.Errorf("pickup consulted the random source %d times", calls)
	}
	if !e.Carrying() || lp.Grid().Cell(6, 1) != Free {
		t.Error("enemy should carry the gold and leave a free cell")
	}
	if lp.NuggetsLeft() != 1 {
		t.Errorf("carried gold still counts: nuggets = %d", lp.NuggetsLeft())
	}
}

func TestEnemyGoldOdds(t *testing.T) {
	layout := []string{
		"R X  N E",
		"XXXXXXXX",
	}

	t.Run("lucky", func(t *testing.T) {
		lp, rec := newTestPlayer(t, RulesAlternate, fixedRand(0), layout...)
		runTicks(lp, 300)
		taken := EventsOf[GoldTaken](rec)
		dropped := EventsOf[GoldDropped](rec)
		if len(taken) != 1 || len(dropped) != 1 {
			t.Fatalf("taken %+v dropped %+v", taken, dropped)
		}
		if dropped[0].At != C(5, 1) || lp.Grid().Cell(5, 1) != Nugget {
			t.Errorf("gold should be dropped on (5,1), got %v", dropped[0].At)
		}
	})

	t.Run("unlucky", func(t *testing.T) {
		lp, rec := newTestPlayer(t, RulesAlternate, fixedRand(999), layout...)
		runTicks(lp, 300)
		if n := len(EventsOf[GoldTaken](rec)); n != 0 {
			t.Errorf("taken %d times, want 0", n)
		}
		if lp.Grid().Cell(6, 1) != Nugget {
			t.Error("gold should still be on (6,1)")
		}
	})
}

type countingRand struct {
	Rand
	calls *int
}

func (r *countingRand) Intn(n int) int {
	*r.calls++
	return r.Rand.Intn(n)
}

func TestHeroStandsOnEnemyHead(t *testing.T) {
	lp, _ := newTestPlayer(t, RulesTraditional, nil,
		"  R  ",
		"  E  ",
		"XXXXX",
	)
	if got := runTicks(lp, 100); got != Playing {
		t.Fatalf("outcome = %v, want playing", got)
	}
	h := lp.Hero()
	if h.Cell() != C(3, 1) || h.Status == Falling {
		t.Errorf("hero at %v %v, want standing on (3,1)", h.Cell(), h.Status)
	}
}

func TestRebirthCell(t *testing.T) {
	tests := []struct {
		name   string
		rules  string
		layout []string
		want   Coord
	}{
		{
			name:  "birth when not reappearing at top",
			rules: RulesAlternate,
			layout: []string{
				"R    ",
				"     ",
				"  E  ",
				"XXXXX",
			},
			want: C(3, 3),
		},
		{
			name:  "random column in the reappear row",
			rules: RulesTraditional,
			layout: []string{
				"R    ",
				"     ",
				"  E  ",
				"XXXXX",
			},
			want: C(1, 2),
		},
		{
			name:  "scan when random tries fail",
			rules: RulesTraditional,
			layout: []string{
				"R    ",
				"MM   ",
				"  E  ",
				"XXXXX",
			},
			want: C(3, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, _ := newTestPlayer(t, tt.rules, fixedRand(0), tt.layout...)
			if got := lp.rebirthCell(lp.Enemies()[0]); got != tt.want {
				t.Errorf("rebirthCell = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissedTicksOnlySuppressSprites(t *testing.T) {
	layout := []string{
		"R     E",
		"XXXXXXX",
	}
	a, recA := newTestPlayer(t, RulesTraditional, nil, layout...)
	b, recB := newTestPlayer(t, RulesTraditional, nil, layout...)

	for i := 0; i < 40; i++ {
		a.Tick(false)
		b.Tick(i%2 == 0)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Hero != sb.Hero || sa.Enemies[0] != sb.Enemies[0] || sa.Tick != sb.Tick {
		t.Errorf("state diverged: %+v vs %+v", sa, sb)
	}
	na := len(EventsOf[SpriteAnimated](recA))
	nb := len(EventsOf[SpriteAnimated](recB))
	if nb >= na {
		t.Errorf("missed ticks should drop sprite events: %d vs %d", na, nb)
	}
}

func TestStartPaintsEveryCell(t *testing.T) {
	lp, rec := newTestPlayer(t, RulesTraditional, nil,
		"R  E",
		"MMMM",
	)
	if got, want := len(EventsOf[CellPainted](rec)), lp.Grid().Width()*lp.Grid().Height(); got != want {
		t.Errorf("painted %d cells, want %d", got, want)
	}
	if got := len(EventsOf[SpriteAnimated](rec)); got != 2 {
		t.Errorf("placed %d sprites, want 2", got)
	}
	if started := EventsOf[LevelStarted](rec); len(started) != 1 || started[0].ID != "test" {
		t.Errorf("started = %+v", started)
	}
}
