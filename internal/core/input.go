package core

// Action is a semantic player intent, independent of the key or mouse
// button that produced it.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Run to the left edge
	ActionRight           // Run to the right edge
	ActionUp              // Climb to the top
	ActionDown            // Climb or drop to the bottom
	ActionStop            // Stay on the current cell
	ActionDigLeft         // Dig below-left
	ActionDigRight        // Dig below-right
	ActionPause           // Freeze or thaw the clock
	ActionStep            // Advance one tick while frozen
	ActionHint            // Show the level hint
	ActionRestart         // Start over after the game ends
	ActionSkip            // Abandon the level and start the next
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionStop:
		return "Stop"
	case ActionDigLeft:
		return "DigLeft"
	case ActionDigRight:
		return "DigRight"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionSkip:
		return "Skip"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Pointer is a mouse position in screen cells.
type Pointer struct {
	X, Y int
}

// InputFrame is the input gathered for one simulation tick.
type InputFrame struct {
	// Actions holds the actions triggered this frame.
	Actions map[Action]bool
	// Pointer is set when the mouse moved this frame.
	Pointer *Pointer
	// Missed marks a catch-up tick run without rendering.
	Missed bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// PointAt records a pointer position for this frame.
func (f *InputFrame) PointAt(x, y int) {
	f.Pointer = &Pointer{X: x, Y: y}
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Pointer == nil
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
	f.Missed = false
}

// Clone returns a deep copy of the frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Pointer != nil {
		p := *f.Pointer
		clone.Pointer = &p
	}
	clone.Missed = f.Missed
	return clone
}
