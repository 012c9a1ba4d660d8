package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name   string
		level  core.Level
		want   error
		wantOK bool
	}{
		{"valid", core.Level{Layout: []string{"R N", "MMM"}}, nil, true},
		{"short rows padded", core.Level{Width: 4, Layout: []string{"R", "MMMM"}}, nil, true},
		{"no hero", core.Level{Layout: []string{"  N"}}, core.ErrNoHero, false},
		{"two heroes", core.Level{Layout: []string{"R R"}}, core.ErrMultipleHeroes, false},
		{"too narrow", core.Level{Layout: []string{"R"}}, core.ErrLevelTooSmall, false},
		{"empty", core.Level{}, core.ErrLevelTooSmall, false},
		{"unknown code", core.Level{Layout: []string{"R?"}}, core.ErrBadLayout, false},
		{"row too wide", core.Level{Width: 2, Layout: []string{"R  "}}, core.ErrBadLayout, false},
		{"row count", core.Level{Height: 3, Layout: []string{"R "}}, core.ErrBadLayout, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLevelSize(t *testing.T) {
	l := core.Level{Layout: []string{"R", "MMM", "  "}}
	w, h := l.Size()
	if w != 3 || h != 3 {
		t.Errorf("Size() = %dx%d, want 3x3", w, h)
	}
}

func TestNewLevelPlayerUnknownRules(t *testing.T) {
	_, err := core.NewLevelPlayer(&core.Level{ID: "x", Rules: "bogus", Layout: []string{"RN"}}, core.DefaultOptions())
	if !errors.Is(err, core.ErrUnknownRules) {
		t.Errorf("err = %v, want ErrUnknownRules", err)
	}
}

func TestNewLevelPlayerRulesOverride(t *testing.T) {
	opts := core.DefaultOptions()
	opts.Rules = core.Scavenger()
	lp, err := core.NewLevelPlayer(&core.Level{ID: "x", Rules: "bogus", Layout: []string{"RN"}}, opts)
	if err != nil {
		t.Fatalf("NewLevelPlayer: %v", err)
	}
	if lp.Rules().Name != core.RulesScavenger {
		t.Errorf("rules = %q", lp.Rules().Name)
	}
}

func TestParseCodeRoundTrip(t *testing.T) {
	for _, b := range []byte("MFXHZTNREOU ") {
		ct, ok := core.ParseCode(b)
		if !ok {
			t.Fatalf("ParseCode(%q) failed", b)
		}
		if ct.Code() != b {
			t.Errorf("%v.Code() = %q, want %q", ct, ct.Code(), b)
		}
	}
	if _, ok := core.ParseCode('?'); ok {
		t.Error("'?' should not parse")
	}
}
