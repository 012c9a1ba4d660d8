package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionDigLeft)
	f.PointAt(3, 4)
	if !f.Has(ActionDigLeft) || f.Has(ActionDigRight) {
		t.Error("Has reports the wrong actions")
	}

	clone := f.Clone()
	f.Pointer.X = 99
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionDigLeft) || clone.Pointer == nil || clone.Pointer.X != 3 {
		t.Errorf("clone shares state with the original: %+v", clone)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame has no actions")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionDigRight.String() != "DigRight" {
		t.Errorf("String() = %q", ActionDigRight.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("unknown actions should say so")
	}
}
