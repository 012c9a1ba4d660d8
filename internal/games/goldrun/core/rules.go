package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownRules is returned when a rules name has no registered factory.
var ErrUnknownRules = errors.New("unknown rules")

// Timing holds the per-step intervals in ticks. A runner advances one point
// every interval; a brick stays dug for BrickLifetime ticks.
type Timing struct {
	HeroRun       int
	HeroFall      int
	EnemyRun      int
	EnemyFall     int
	EnemyCaptive  int
	BrickLifetime int
}

// SearchState is the per-enemy memory used by search strategies.
type SearchState struct {
	// Vertical selects the axis an alternating search tries first.
	Vertical bool
	// Blocked is set when another enemy stopped the last move.
	Blocked bool
}

// Searcher chooses an enemy's next direction at a cell boundary.
type Searcher interface {
	FindBestDirection(st *SearchState, from, hero Coord, g *Grid) Direction
}

// Rules is one rule set. Fields are fixed once registered.
type Rules struct {
	Name  string
	Title string

	PointsPerCell       int
	VariableTiming      bool
	AlwaysCollectNugget bool
	RunThroughHole      bool
	ReappearAtTop       bool
	ReappearRow         int
	TurnAnywhere        bool

	// Fixed is used when VariableTiming is false.
	Fixed Timing
	// ByEnemies is indexed by the number of enemies, the last entry covering
	// any larger count.
	ByEnemies []Timing

	Search Searcher
}

// Timing returns the intervals for a level with the given number of enemies.
func (r *Rules) Timing(enemies int) Timing {
	if !r.VariableTiming || len(r.ByEnemies) == 0 {
		return r.Fixed
	}
	if enemies < 0 {
		enemies = 0
	}
	if enemies >= len(r.ByEnemies) {
		enemies = len(r.ByEnemies) - 1
	}
	return r.ByEnemies[enemies]
}

// FindBestDirection delegates to the rule set's search strategy.
func (r *Rules) FindBestDirection(st *SearchState, from, hero Coord, g *Grid) Direction {
	return r.Search.FindBestDirection(st, from, hero, g)
}

// RulesFactory creates a fresh rule set.
type RulesFactory func() *Rules

var (
	rulesMu   sync.RWMutex
	rulebook  = map[string]RulesFactory{}
	rulesCode = map[byte]string{}
)

// RegisterRules adds a rule set under name, with an optional one-byte code
// used by level files. Registering a name twice panics.
func RegisterRules(name string, code byte, f RulesFactory) {
	rulesMu.Lock()
	defer rulesMu.Unlock()

	if _, exists := rulebook[name]; exists {
		panic(fmt.Sprintf("rules: %q already registered", name))
	}
	rulebook[name] = f
	if code != 0 {
		rulesCode[code] = name
	}
}

// NewRules creates the rule set registered under name. A single-byte name
// is also looked up as a level code.
func NewRules(name string) (*Rules, error) {
	rulesMu.RLock()
	f, ok := rulebook[name]
	if !ok && len(name) == 1 {
		if full, found := rulesCode[name[0]]; found {
			f, ok = rulebook[full]
		}
	}
	rulesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("rules: %w %q", ErrUnknownRules, name)
	}
	return f(), nil
}

// RulesNames returns the registered rule set names in sorted order.
func RulesNames() []string {
	rulesMu.RLock()
	defer rulesMu.RUnlock()

	names := make([]string, 0, len(rulebook))
	for name := range rulebook {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Built-in rule set names.
const (
	RulesTraditional = "traditional"
	RulesAlternate   = "alternate"
	RulesScavenger   = "scavenger"
)

func init() {
	RegisterRules(RulesTraditional, 'T', Traditional)
	RegisterRules(RulesAlternate, 'K', Alternate)
	RegisterRules(RulesScavenger, 'S', Scavenger)
}

// Traditional plays like the classic arcade game: enemies speed up less as
// their number grows, always grab gold and reappear along the top.
func Traditional() *Rules {
	return &Rules{
		Name:                RulesTraditional,
		Title:               "Traditional",
		PointsPerCell:       4,
		VariableTiming:      true,
		AlwaysCollectNugget: true,
		RunThroughHole:      true,
		ReappearAtTop:       true,
		ReappearRow:         2,
		Fixed:               Timing{HeroRun: 2, HeroFall: 2, EnemyRun: 3, EnemyFall: 3, EnemyCaptive: 60, BrickLifetime: 150},
		ByEnemies: []Timing{
			{HeroRun: 2, HeroFall: 2, EnemyRun: 3, EnemyFall: 3, EnemyCaptive: 60, BrickLifetime: 150},
			{HeroRun: 2, HeroFall: 2, EnemyRun: 3, EnemyFall: 3, EnemyCaptive: 65, BrickLifetime: 155},
			{HeroRun: 2, HeroFall: 2, EnemyRun: 4, EnemyFall: 3, EnemyCaptive: 70, BrickLifetime: 160},
			{HeroRun: 3, HeroFall: 2, EnemyRun: 4, EnemyFall: 4, EnemyCaptive: 75, BrickLifetime: 170},
			{HeroRun: 3, HeroFall: 3, EnemyRun: 5, EnemyFall: 4, EnemyCaptive: 80, BrickLifetime: 180},
			{HeroRun: 3, HeroFall: 3, EnemyRun: 5, EnemyFall: 5, EnemyCaptive: 90, BrickLifetime: 190},
		},
		Search: TraditionalSearch{},
	}
}

// Alternate uses fixed timing, probabilistic gold pickup and enemies that
// alternate between horizontal and vertical pursuit.
func Alternate() *Rules {
	return &Rules{
		Name:          RulesAlternate,
		Title:         "Alternate",
		PointsPerCell: 4,
		Fixed:         Timing{HeroRun: 2, HeroFall: 2, EnemyRun: 3, EnemyFall: 4, EnemyCaptive: 100, BrickLifetime: 200},
		Search:        AlternateSearch{},
	}
}

// Scavenger moves in finer steps and lets runners reverse mid-cell.
func Scavenger() *Rules {
	return &Rules{
		Name:                RulesScavenger,
		Title:               "Scavenger",
		PointsPerCell:       12,
		AlwaysCollectNugget: true,
		RunThroughHole:      true,
		ReappearAtTop:       true,
		ReappearRow:         1,
		TurnAnywhere:        true,
		Fixed:               Timing{HeroRun: 1, HeroFall: 1, EnemyRun: 2, EnemyFall: 2, EnemyCaptive: 100, BrickLifetime: 220},
		Search:              TraditionalSearch{},
	}
}
