package core

import (
	"errors"
	"fmt"
)

// ErrNoLevels is returned when a session is started without levels.
var ErrNoLevels = errors.New("no levels")

// SessionOptions configures a Session.
type SessionOptions struct {
	// Player is the template for each level; Number is set per level.
	Player Options
	Lives  int
	// RestartPause is the number of ticks between a death and the retry.
	RestartPause int
	// LevelPause is the number of ticks between two levels.
	LevelPause int
}

// DefaultSessionOptions returns five lives and short pauses.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Player:       DefaultOptions(),
		Lives:        5,
		RestartPause: 50,
		LevelPause:   50,
	}
}

// SessionState is the state of a whole game.
type SessionState int

const (
	SessionPlaying SessionState = iota
	SessionPaused               // between a death or a level and the next start
	SessionOver
	SessionWon
)

func (s SessionState) String() string {
	switch s {
	case SessionPlaying:
		return "playing"
	case SessionPaused:
		return "paused"
	case SessionOver:
		return "game-over"
	case SessionWon:
		return "won"
	}
	return "unknown"
}

// Session plays a sequence of levels with a pool of lives. A death restarts
// the level from its layout; completing a level moves to the next one and
// earns a life.
type Session struct {
	levels []*Level
	index  int
	opts   SessionOptions
	sink   Sink

	player  *LevelPlayer
	lives   int
	banked  int
	settled bool
	ticks   uint64
	state   SessionState
	pause   int
	advance bool
}

// NewSession validates every level and starts levels[start].
func NewSession(levels []*Level, start int, opts SessionOptions) (*Session, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if start < 0 || start >= len(levels) {
		return nil, fmt.Errorf("session: start level %d out of range [0,%d)", start, len(levels))
	}
	for _, lvl := range levels {
		if err := lvl.Validate(); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		if opts.Player.Rules == nil {
			if _, err := NewRules(lvl.Rules); err != nil {
				return nil, fmt.Errorf("session: level %q: %w", lvl.ID, err)
			}
		}
	}
	if opts.Lives <= 0 {
		opts.Lives = 1
	}

	s := &Session{
		levels: levels,
		index:  start,
		opts:   opts,
		sink:   opts.Player.Sink,
		lives:  opts.Lives,
	}
	if s.sink == nil {
		s.sink = Discard
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load builds a fresh player for the current level.
func (s *Session) load() error {
	po := s.opts.Player
	po.Number = s.index + 1
	po.Sink = SinkFunc(s.forward)
	p, err := NewLevelPlayer(s.levels[s.index], po)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.player = p
	s.settled = false
	s.state = SessionPlaying
	p.Start()
	return nil
}

// forward rewrites level-local score totals into session totals.
func (s *Session) forward(ev Event) {
	if sc, ok := ev.(ScoreChanged); ok {
		sc.Total += s.banked
		ev = sc
	}
	s.sink.Emit(ev)
}

// Tick advances the session by one tick.
func (s *Session) Tick(missed bool) {
	switch s.state {
	case SessionOver, SessionWon:
		return
	case SessionPaused:
		s.ticks++
		s.pause--
		if s.pause <= 0 {
			s.resume()
		}
		return
	}

	s.ticks++
	switch s.player.Tick(missed) {
	case HeroDied:
		s.settle()
		s.lives--
		s.sink.Emit(LivesChanged{Delta: -1, Lives: s.lives})
		if s.lives <= 0 {
			s.state = SessionOver
			s.sink.Emit(GameOver{Score: s.Score()})
			return
		}
		s.wait(s.opts.RestartPause, false)
	case Completed:
		s.settle()
		if s.index == len(s.levels)-1 {
			s.state = SessionWon
			s.sink.Emit(GameWon{Score: s.Score()})
			return
		}
		s.lives++
		s.sink.Emit(LivesChanged{Delta: 1, Lives: s.lives})
		s.wait(s.opts.LevelPause, true)
	}
}

func (s *Session) settle() {
	s.banked += s.player.Score()
	s.settled = true
}

func (s *Session) wait(ticks int, advance bool) {
	s.advance = advance
	s.pause = ticks
	s.state = SessionPaused
	if ticks <= 0 {
		s.resume()
	}
}

func (s *Session) resume() {
	if s.advance {
		s.index++
	}
	// Levels were validated up front, so load cannot fail here.
	_ = s.load()
}

// Apply feeds one input to the current level. Inputs arriving while the
// session is paused or over are ignored.
func (s *Session) Apply(in Input) bool {
	if s.state != SessionPlaying {
		return false
	}
	switch in.Kind {
	case InputTarget:
		s.player.SetHeroTarget(in.I, in.J)
		return true
	case InputDigLeft:
		return s.player.DigLeft()
	case InputDigRight:
		return s.player.DigRight()
	case InputSkip:
		return s.Skip()
	}
	return false
}

// Skip abandons the current level and starts the next one without a
// bonus. It reports false on the last level.
func (s *Session) Skip() bool {
	if s.index >= len(s.levels)-1 || s.state == SessionOver || s.state == SessionWon {
		return false
	}
	s.index++
	_ = s.load()
	return true
}

// Score returns the session total, including the level in play.
func (s *Session) Score() int {
	if s.settled {
		return s.banked
	}
	return s.banked + s.player.Score()
}

func (s *Session) Player() *LevelPlayer { return s.player }
func (s *Session) Lives() int           { return s.lives }
func (s *Session) Ticks() uint64        { return s.ticks }
func (s *Session) State() SessionState  { return s.state }
func (s *Session) LevelIndex() int      { return s.index }
func (s *Session) Levels() []*Level     { return s.levels }

// Over reports whether the session has ended, lost or won.
func (s *Session) Over() bool {
	return s.state == SessionOver || s.state == SessionWon
}
