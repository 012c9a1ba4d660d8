package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

func TestNewRules(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{core.RulesTraditional, core.RulesTraditional},
		{core.RulesAlternate, core.RulesAlternate},
		{core.RulesScavenger, core.RulesScavenger},
		{"T", core.RulesTraditional},
		{"K", core.RulesAlternate},
		{"S", core.RulesScavenger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := core.NewRules(tt.name)
			if err != nil {
				t.Fatalf("NewRules(%q) error: %v", tt.name, err)
			}
			if r.Name != tt.want {
				t.Errorf("Name = %q, want %q", r.Name, tt.want)
			}
			if r.PointsPerCell <= 0 {
				t.Errorf("PointsPerCell = %d", r.PointsPerCell)
			}
			if r.Search == nil {
				t.Error("rules without a search strategy")
			}
			if lt := r.Timing(0).BrickLifetime; lt < core.MinBrickLifetime {
				t.Errorf("brick lifetime %d below minimum %d", lt, core.MinBrickLifetime)
			}
		})
	}
}

func TestNewRulesUnknown(t *testing.T) {
	_, err := core.NewRules("nope")
	if !errors.Is(err, core.ErrUnknownRules) {
		t.Fatalf("err = %v, want ErrUnknownRules", err)
	}
}

func TestRulesNamesSorted(t *testing.T) {
	names := core.RulesNames()
	want := []string{core.RulesAlternate, core.RulesScavenger, core.RulesTraditional}
	if len(names) < len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestRegisterRulesDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a name twice should panic")
		}
	}()
	core.RegisterRules(core.RulesTraditional, 0, core.Traditional)
}

func TestTraditionalTimingSlowsWithMoreEnemies(t *testing.T) {
	r := core.Traditional()

	prev := r.Timing(0)
	for n := 1; n <= 8; n++ {
		cur := r.Timing(n)
		if cur.EnemyRun < prev.EnemyRun || cur.EnemyCaptive < prev.EnemyCaptive {
			t.Errorf("timing for %d enemies is faster than for %d", n, n-1)
		}
		prev = cur
	}
	if r.Timing(5) != r.Timing(50) {
		t.Error("counts past the table should reuse its last row")
	}
}

func TestFixedTimingIgnoresEnemyCount(t *testing.T) {
	r := core.Alternate()
	if r.Timing(0) != r.Timing(7) {
		t.Error("alternate rules use fixed timing")
	}
}
