package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorYellow)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorYellow {
		t.Errorf("GetCell(5, 5) = %+v", got)
	}
	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %+v", got)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 2)

	s.DrawTextColored(6, 0, "héllo", ColorRed)
	if s.Row(0) != "      hé" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(7, 0).Color != ColorRed {
		t.Error("text should carry its color")
	}

	s.DrawTextCentered(1, "ab", ColorDefault)
	if s.Row(1) != "   ab   " {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorWhite)

	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	s.FillRect(NewRect(0, 0, 4, 3))
	if strings.TrimSpace(s.String()) != "" {
		t.Error("FillRect should blank the area")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, 'X')
	s.Resize(5, 2)

	if s.Width() != 5 || s.Height() != 2 {
		t.Errorf("size = %dx%d, want 5x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should clear the screen")
	}

	s.Resize(-1, -1)
	if s.Width() != 0 || s.Height() != 0 || s.String() != "" {
		t.Error("negative sizes should give an empty screen")
	}
}
