package core

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Rand is the source of randomness for gold handling and respawns.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a deterministic source for seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Scoring holds the points awarded for each scoring action.
type Scoring struct {
	Nugget        int
	EnemyTrapped  int
	EnemyKilled   int
	LevelComplete int
}

// DefaultScoring returns the standard point values.
func DefaultScoring() Scoring {
	return Scoring{
		Nugget:        250,
		EnemyTrapped:  75,
		EnemyKilled:   75,
		LevelComplete: 1500,
	}
}

// Options configures a LevelPlayer.
type Options struct {
	// Rules overrides the rule set named by the level.
	Rules  *Rules
	Sink   Sink
	Rand   Rand
	Logger *log.Logger

	Scoring Scoring
	// PickupPercent is the chance an enemy takes gold it walks over when
	// the rules do not make it certain.
	PickupPercent int
	// DropPerMille is the chance per cell that a carrying enemy drops its
	// gold.
	DropPerMille int
	// RespawnTries is the number of random columns tried before scanning
	// for a free cell.
	RespawnTries int
	// Number is the level's position in its sequence, used in events.
	Number int
}

// DefaultOptions returns options with standard scoring and gold odds.
func DefaultOptions() Options {
	return Options{
		Scoring:       DefaultScoring(),
		PickupPercent: 20,
		DropPerMille:  80,
		RespawnTries:  3,
	}
}

// Outcome is the state of a level in play.
type Outcome int

const (
	Playing Outcome = iota
	Completed
	HeroDied
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Completed:
		return "completed"
	case HeroDied:
		return "hero-died"
	}
	return "unknown"
}

// LevelPlayer runs one level: it owns the grid, the hero and the enemies,
// advances them one tick at a time and reports what happens through the
// sink.
type LevelPlayer struct {
	level   *Level
	grid    *Grid
	rules   *Rules
	hero    *Hero
	enemies []*Enemy

	opts   Options
	sink   Sink
	rng    Rand
	logger *log.Logger
	timing Timing

	ticks   uint64
	nuggets int
	score   int
	outcome Outcome
	missed  bool
	exitDue bool // hero entered a cell or the gold just ran out
}

// NewLevelPlayer builds the grid and runners for lvl. The level must have
// exactly one hero and a known rule set.
func NewLevelPlayer(lvl *Level, opts Options) (*LevelPlayer, error) {
	rules := opts.Rules
	if rules == nil {
		r, err := NewRules(lvl.Rules)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", lvl.ID, err)
		}
		rules = r
	}
	parsed, err := lvl.parse()
	if err != nil {
		return nil, err
	}

	lp := &LevelPlayer{
		level:  lvl,
		grid:   parsed.grid,
		rules:  rules,
		opts:   opts,
		sink:   opts.Sink,
		rng:    opts.Rand,
		logger: opts.Logger,
	}
	if lp.sink == nil {
		lp.sink = Discard
	}
	if lp.rng == nil {
		lp.rng = NewRand(0)
	}
	if lp.logger == nil {
		lp.logger = log.New(io.Discard)
	}

	ppc := rules.PointsPerCell
	lp.hero = newHero(parsed.hero, ppc)
	for id, at := range parsed.enemies {
		lp.enemies = append(lp.enemies, newEnemy(id, at, ppc))
	}
	lp.grid.CalculateAccess(rules.RunThroughHole)
	lp.timing = rules.Timing(len(lp.enemies))
	lp.nuggets = lp.grid.CountNuggets()
	return lp, nil
}

// Start announces the level: every cell is painted and every sprite placed.
func (lp *LevelPlayer) Start() {
	lp.emit(LevelStarted{Number: lp.opts.Number, ID: lp.level.ID, Name: lp.level.Name})
	for j := 1; j <= lp.grid.Height(); j++ {
		for i := 1; i <= lp.grid.Width(); i++ {
			lp.paint(i, j)
		}
	}
	lp.animate(HeroSprite, &lp.hero.Runner, false, 0)
	for _, e := range lp.enemies {
		lp.animate(e.sprite(), &e.Runner, false, 0)
	}
	if lp.level.Hint != "" {
		lp.emit(HintAvailable{Text: lp.level.Hint})
	}
	if lp.nuggets == 0 {
		lp.revealLadders()
	}
	lp.logger.Debug("level started",
		"id", lp.level.ID,
		"rules", lp.rules.Name,
		"enemies", len(lp.enemies),
		"nuggets", lp.nuggets,
	)
}

// Tick advances the level by one tick. missed marks a catch-up tick whose
// sprite events are not emitted.
func (lp *LevelPlayer) Tick(missed bool) Outcome {
	if lp.outcome != Playing {
		return lp.outcome
	}
	lp.ticks++
	lp.missed = missed

	lp.hero.step(lp)
	for _, e := range lp.enemies {
		e.step(lp)
	}
	for _, ch := range lp.grid.AdvanceDigs() {
		lp.paint(ch.At.I, ch.At.J)
		if ch.Closed {
			lp.crush(ch.At)
		}
	}

	if lp.outcome == Playing {
		if id, caught := lp.caughtBy(); caught {
			lp.heroDies(id)
		}
	}
	if lp.outcome == Playing && lp.exitDue && lp.nuggets == 0 && lp.hero.J == 1 && lp.hero.AtBoundary() {
		lp.complete()
	}
	lp.exitDue = false
	return lp.outcome
}

// SetHeroTarget points the hero at cell (i, j), clamped to the grid.
func (lp *LevelPlayer) SetHeroTarget(i, j int) {
	i = min(max(i, 1), lp.grid.Width())
	j = min(max(j, 1), lp.grid.Height())
	lp.hero.target = C(i, j)
}

// DigLeft digs below and left of the hero.
func (lp *LevelPlayer) DigLeft() bool {
	return lp.outcome == Playing && lp.hero.dig(lp, Left)
}

// DigRight digs below and right of the hero.
func (lp *LevelPlayer) DigRight() bool {
	return lp.outcome == Playing && lp.hero.dig(lp, Right)
}

func (lp *LevelPlayer) Level() *Level     { return lp.level }
func (lp *LevelPlayer) Grid() *Grid       { return lp.grid }
func (lp *LevelPlayer) Rules() *Rules     { return lp.rules }
func (lp *LevelPlayer) Hero() *Hero       { return lp.hero }
func (lp *LevelPlayer) Enemies() []*Enemy { return lp.enemies }
func (lp *LevelPlayer) Timing() Timing    { return lp.timing }
func (lp *LevelPlayer) Ticks() uint64     { return lp.ticks }
func (lp *LevelPlayer) NuggetsLeft() int  { return lp.nuggets }
func (lp *LevelPlayer) Score() int        { return lp.score }
func (lp *LevelPlayer) Outcome() Outcome  { return lp.outcome }

func (lp *LevelPlayer) emit(ev Event) {
	lp.sink.Emit(ev)
}

func (lp *LevelPlayer) sound(c Cue) {
	if !lp.missed {
		lp.emit(Sound{Cue: c})
	}
}

func (lp *LevelPlayer) paint(i, j int) {
	lp.emit(CellPainted{At: C(i, j), Type: lp.grid.Cell(i, j), DigStage: lp.grid.DigStage(i, j)})
}

func (lp *LevelPlayer) animate(sprite int, r *Runner, carrying bool, interval int) {
	if lp.missed {
		return
	}
	a := r.anim(lp.grid)
	frames := animFrames[a]
	lp.emit(SpriteAnimated{
		Sprite:     sprite,
		At:         r.Cell(),
		Dir:        r.Dir,
		Anim:       a,
		FirstFrame: frames[0],
		LastFrame:  frames[1],
		Duration:   interval * r.ppc,
		Carrying:   carrying,
	})
}

func (lp *LevelPlayer) award(points int) {
	if points == 0 {
		return
	}
	lp.score += points
	lp.emit(ScoreChanged{Delta: points, Total: lp.score})
}

// supported reports whether r can stay put at its cell: the grid holds it
// up or it stands on another runner's head.
func (lp *LevelPlayer) supported(r *Runner) bool {
	if r.access(lp.grid).Has(CanStand) {
		return true
	}
	rx, ry := r.Point()
	below := func(o *Runner) bool {
		if o == r || o.Status == Falling {
			return false
		}
		ox, oy := o.Point()
		return abs(ox-rx) < r.ppc && oy-ry == r.ppc
	}
	for _, e := range lp.enemies {
		if below(&e.Runner) {
			return true
		}
	}
	return false
}

// enemyIn reports whether any enemy mostly occupies (i, j).
func (lp *LevelPlayer) enemyIn(i, j int) bool {
	for _, e := range lp.enemies {
		if e.NearestCell() == C(i, j) {
			return true
		}
	}
	return false
}

// enemyBlocked reports whether e's next point would crowd another enemy in
// its lane. Overlapping enemies resolve by id: the lower id moves.
func (lp *LevelPlayer) enemyBlocked(e *Enemy) bool {
	ppc := e.ppc
	ex, ey := e.Point()
	di, dj := e.Dir.Delta()
	for _, o := range lp.enemies {
		if o == e {
			continue
		}
		ox, oy := o.Point()
		gap, lane := (ox-ex)*di, abs(oy-ey)
		if dj != 0 {
			gap, lane = (oy-ey)*dj, abs(ox-ex)
		}
		if lane >= ppc {
			continue
		}
		if abs(gap) < ppc {
			if o.ID < e.ID {
				return true
			}
			continue
		}
		if gap < 0 {
			continue
		}
		limit := ppc
		if o.Dir == e.Dir.Opposite() {
			limit = 2 * ppc
		}
		if gap-1 < limit {
			return true
		}
	}
	return false
}

// caughtBy returns the id of a non-falling enemy that has reached the hero:
// one overlapping it by more than a quarter cell, or one standing right
// beside it on the same row with a way into the hero's cell. The tolerance lets the hero stand on an
// enemy's head.
func (lp *LevelPlayer) caughtBy() (int, bool) {
	h := lp.hero
	hx, hy := h.Point()
	reach := h.ppc - max(1, h.ppc/4)
	for _, e := range lp.enemies {
		if e.Status == Falling || e.Status == Captive {
			continue
		}
		ex, ey := e.Point()
		dx, dy := abs(ex-hx), abs(ey-hy)
		if dx < reach && dy < reach {
			return e.ID, true
		}
		if e.Status == Standing && dy == 0 && dx <= h.ppc && lp.canStepToward(e, hx) {
			return e.ID, true
		}
	}
	return 0, false
}

// canStepToward reports whether e could move sideways toward x.
func (lp *LevelPlayer) canStepToward(e *Enemy, x int) bool {
	ex, _ := e.Point()
	d := Left
	if x > ex {
		d = Right
	}
	return lp.grid.EnemyAccess(e.I, e.J).Has(d.flag())
}

func (lp *LevelPlayer) collectNugget(at Coord) {
	lp.nuggets--
	lp.emit(NuggetCollected{At: at, Remaining: lp.nuggets})
	lp.sound(CueGold)
	lp.award(lp.opts.Scoring.Nugget)
	if lp.nuggets == 0 {
		lp.exitDue = true
		lp.revealLadders()
	}
}

func (lp *LevelPlayer) loseNugget(e *Enemy) {
	lp.nuggets--
	lp.emit(NuggetLost{EnemyID: e.ID, Remaining: lp.nuggets})
	if lp.nuggets == 0 {
		lp.exitDue = true
		lp.revealLadders()
	}
}

func (lp *LevelPlayer) revealLadders() {
	cells := lp.grid.RevealHiddenLadders()
	if len(cells) == 0 {
		return
	}
	for _, c := range cells {
		lp.paint(c.I, c.J)
	}
	lp.emit(HiddenLaddersRevealed{Cells: cells})
	lp.sound(CueLadders)
}

func (lp *LevelPlayer) pickUp() bool {
	if lp.rules.AlwaysCollectNugget {
		return true
	}
	return lp.rng.Intn(100) < lp.opts.PickupPercent
}

func (lp *LevelPlayer) dropRoll() bool {
	return lp.rng.Intn(1000) < lp.opts.DropPerMille
}

func (lp *LevelPlayer) trapEnemy(e *Enemy) {
	g := lp.grid
	g.UseHole(e.I, e.J)
	lp.paint(e.I, e.J)
	e.stop()
	e.Status = Captive
	e.captive = lp.timing.EnemyCaptive
	lp.animate(e.sprite(), &e.Runner, e.Carrying(), 0)

	if e.Carrying() && g.Cell(e.I, e.J-1) == Free {
		g.SetCell(e.I, e.J-1, Nugget)
		lp.paint(e.I, e.J-1)
		e.Nuggets = 0
		lp.emit(GoldDropped{EnemyID: e.ID, At: C(e.I, e.J-1)})
	}
	lp.emit(EnemyTrapped{EnemyID: e.ID, At: e.Cell()})
	lp.sound(CueTrapped)
	lp.award(lp.opts.Scoring.EnemyTrapped)
}

// crush handles a dug brick closing at c.
func (lp *LevelPlayer) crush(c Coord) {
	if lp.hero.NearestCell() == c && lp.outcome == Playing {
		lp.heroDies(-1)
	}
	for _, e := range lp.enemies {
		if e.NearestCell() == c {
			lp.killEnemy(e)
		}
	}
}

func (lp *LevelPlayer) killEnemy(e *Enemy) {
	at := e.NearestCell()
	lp.emit(EnemyKilled{EnemyID: e.ID, At: at})
	lp.sound(CueKilled)
	if e.Carrying() {
		e.Nuggets = 0
		lp.loseNugget(e)
	}
	lp.award(lp.opts.Scoring.EnemyKilled)

	spawn := lp.rebirthCell(e)
	e.respawnAt(spawn)
	lp.emit(EnemyReborn{EnemyID: e.ID, At: spawn})
	lp.animate(e.sprite(), &e.Runner, false, 0)
	lp.logger.Debug("enemy killed", "id", e.ID, "at", at, "reborn", spawn)
}

// rebirthCell picks where a killed enemy reappears.
func (lp *LevelPlayer) rebirthCell(e *Enemy) Coord {
	if !lp.rules.ReappearAtTop {
		return e.Birth
	}
	g := lp.grid
	row := min(max(lp.rules.ReappearRow, 1), g.Height())
	for range lp.opts.RespawnTries {
		i := 1 + lp.rng.Intn(g.Width())
		if lp.vacant(i, row) {
			return C(i, row)
		}
	}
	for j := row; j <= g.Height(); j++ {
		for i := 1; i <= g.Width(); i++ {
			if lp.vacant(i, j) {
				return C(i, j)
			}
		}
	}
	for j := 1; j < row; j++ {
		for i := 1; i <= g.Width(); i++ {
			if lp.vacant(i, j) {
				return C(i, j)
			}
		}
	}
	return e.Birth
}

func (lp *LevelPlayer) vacant(i, j int) bool {
	switch lp.grid.Cell(i, j) {
	case Free, HiddenLadder:
	default:
		return false
	}
	if lp.hero.NearestCell() == C(i, j) {
		return false
	}
	return !lp.enemyIn(i, j)
}

func (lp *LevelPlayer) heroDies(enemyID int) {
	lp.outcome = HeroDied
	at := lp.hero.NearestCell()
	lp.emit(HeroCaught{At: at, EnemyID: enemyID})
	lp.sound(CueCaught)
	lp.logger.Debug("hero caught", "level", lp.level.ID, "at", at, "enemy", enemyID, "tick", lp.ticks)
}

func (lp *LevelPlayer) complete() {
	lp.outcome = Completed
	lp.award(lp.opts.Scoring.LevelComplete)
	lp.emit(LevelComplete{Number: lp.opts.Number, ID: lp.level.ID, Ticks: lp.ticks})
	lp.sound(CueComplete)
	lp.logger.Debug("level complete", "level", lp.level.ID, "tick", lp.ticks, "score", lp.score)
}
