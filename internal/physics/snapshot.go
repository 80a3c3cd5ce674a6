package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// BodyState is the renderer-facing copy of one entity's state.
type BodyState struct {
	Name     string
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
	Velocity rl.Vector3
}

// Snapshot is immutable once published.
type Snapshot struct {
	Tick     uint64
	Contacts int
	Bodies   []BodyState
}

// Find returns the first body with the given name.
func (s *Snapshot) Find(name string) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodyState{}, false
}
