package core

// InputKind names a player action that changes the simulation.
type InputKind string

const (
	InputTarget   InputKind = "target"
	InputDigLeft  InputKind = "dig-left"
	InputDigRight InputKind = "dig-right"
	InputSkip     InputKind = "skip"
)

// Input is one player action applied before session tick Tick. A list of
// inputs plus the seed and options reproduces a game exactly.
type Input struct {
	Tick uint64    `yaml:"tick"`
	Kind InputKind `yaml:"kind"`
	I    int       `yaml:"i,omitempty"`
	J    int       `yaml:"j,omitempty"`
}

// Replay drives s through inputs, ticking until the session ends or has
// run ticks ticks. Inputs must be ordered by Tick.
func Replay(s *Session, inputs []Input, ticks uint64) {
	k := 0
	for !s.Over() && s.Ticks() < ticks {
		for k < len(inputs) && inputs[k].Tick <= s.Ticks() {
			s.Apply(inputs[k])
			k++
		}
		s.Tick(false)
	}
}
