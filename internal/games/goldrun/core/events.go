package core

// Event is a notification emitted by the simulation. The set of event
// types is closed; consumers switch on the concrete type.
type Event interface {
	event()
}

// Anim names a sprite animation.
type Anim int

const (
	AnimStand Anim = iota
	AnimRunLeft
	AnimRunRight
	AnimClimb
	AnimBarLeft
	AnimBarRight
	AnimFall
	AnimCaptive
)

func (a Anim) String() string {
	switch a {
	case AnimStand:
		return "stand"
	case AnimRunLeft:
		return "run-left"
	case AnimRunRight:
		return "run-right"
	case AnimClimb:
		return "climb"
	case AnimBarLeft:
		return "bar-left"
	case AnimBarRight:
		return "bar-right"
	case AnimFall:
		return "fall"
	case AnimCaptive:
		return "captive"
	}
	return "unknown"
}

// animFrames gives the first and last frame of each animation.
var animFrames = map[Anim][2]int{
	AnimStand:    {0, 0},
	AnimRunLeft:  {1, 4},
	AnimRunRight: {5, 8},
	AnimClimb:    {9, 10},
	AnimBarLeft:  {11, 13},
	AnimBarRight: {14, 16},
	AnimFall:     {17, 17},
	AnimCaptive:  {18, 19},
}

// Cue names a sound effect.
type Cue int

const (
	CueStep Cue = iota
	CueFall
	CueDig
	CueGold
	CueTrapped
	CueKilled
	CueCaught
	CueLadders
	CueComplete
)

func (c Cue) String() string {
	switch c {
	case CueStep:
		return "step"
	case CueFall:
		return "fall"
	case CueDig:
		return "dig"
	case CueGold:
		return "gold"
	case CueTrapped:
		return "trapped"
	case CueKilled:
		return "killed"
	case CueCaught:
		return "caught"
	case CueLadders:
		return "ladders"
	case CueComplete:
		return "complete"
	}
	return "unknown"
}

// HeroSprite is the sprite id of the hero. Enemies use their id plus one.
const HeroSprite = 0

// CellPainted reports that a cell's appearance changed.
type CellPainted struct {
	At       Coord
	Type     CellType
	DigStage int
}

// SpriteAnimated starts a sprite moving out of a cell. Duration is the
// number of ticks the move takes.
type SpriteAnimated struct {
	Sprite     int
	At         Coord
	Dir        Direction
	Anim       Anim
	FirstFrame int
	LastFrame  int
	Duration   int
	Carrying   bool
}

// ScoreChanged reports points awarded.
type ScoreChanged struct {
	Delta int
	Total int
}

// LivesChanged reports a change in the hero's remaining lives.
type LivesChanged struct {
	Delta int
	Lives int
}

// NuggetCollected reports the hero taking gold.
type NuggetCollected struct {
	At        Coord
	Remaining int
}

// NuggetLost reports gold destroyed with an enemy that carried it.
type NuggetLost struct {
	EnemyID   int
	Remaining int
}

// GoldTaken reports an enemy picking up gold.
type GoldTaken struct {
	EnemyID int
	At      Coord
}

// GoldDropped reports an enemy putting gold down.
type GoldDropped struct {
	EnemyID int
	At      Coord
}

// HiddenLaddersRevealed reports the hidden ladders appearing.
type HiddenLaddersRevealed struct {
	Cells []Coord
}

// EnemyTrapped reports an enemy falling into a hole.
type EnemyTrapped struct {
	EnemyID int
	At      Coord
}

// EnemyKilled reports an enemy crushed by a closing brick.
type EnemyKilled struct {
	EnemyID int
	At      Coord
}

// EnemyReborn reports a killed enemy reappearing.
type EnemyReborn struct {
	EnemyID int
	At      Coord
}

// HeroCaught reports the hero's death, by an enemy or a closing brick.
type HeroCaught struct {
	At      Coord
	EnemyID int // -1 when crushed by a brick
}

// LevelStarted reports a level being set up.
type LevelStarted struct {
	Number int
	ID     string
	Name   string
}

// LevelComplete reports the hero reaching the top with all gold taken.
type LevelComplete struct {
	Number int
	ID     string
	Ticks  uint64
}

// HintAvailable carries the current level's hint text.
type HintAvailable struct {
	Text string
}

// Sound requests a sound effect.
type Sound struct {
	Cue Cue
}

// GameOver reports the hero running out of lives.
type GameOver struct {
	Score int
}

// GameWon reports the last level being completed.
type GameWon struct {
	Score int
}

func (CellPainted) event()           {}
func (SpriteAnimated) event()        {}
func (ScoreChanged) event()          {}
func (LivesChanged) event()          {}
func (NuggetCollected) event()       {}
func (NuggetLost) event()            {}
func (GoldTaken) event()             {}
func (GoldDropped) event()           {}
func (HiddenLaddersRevealed) event() {}
func (EnemyTrapped) event()          {}
func (EnemyKilled) event()           {}
func (EnemyReborn) event()           {}
func (HeroCaught) event()            {}
func (LevelStarted) event()          {}
func (LevelComplete) event()         {}
func (HintAvailable) event()         {}
func (Sound) event()                 {}
func (GameOver) event()              {}
func (GameWon) event()               {}

// Sink receives simulation events in emission order.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Emit implements Sink.
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Recorder keeps every event it receives.
type Recorder struct {
	Events []Event
}

// Emit implements Sink.
func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Tee forwards every event to each sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(ev Event) {
		for _, s := range sinks {
			s.Emit(ev)
		}
	})
}

// EventsOf returns the recorded events of type T.
func EventsOf[T Event](r *Recorder) []T {
	var out []T
	for _, ev := range r.Events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}
