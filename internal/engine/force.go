package engine

import (
	"fmt"

	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Force is a constant push applied to its entity once per physics tick.
type Force struct {
	Direction rl.Vector3 // unit length
	Strength  float32

	composite rl.Vector3
	entity    *Entity
}

// NewForce normalizes direction and precomputes the composite vector.
// A zero-length direction is rejected with vmath.ErrDegenerateVector.
func NewForce(direction rl.Vector3, strength float32) (*Force, error) {
	dir, err := vmath.Normalize(direction)
	if err != nil {
		return nil, fmt.Errorf("force direction %v: %w", direction, err)
	}
	return &Force{
		Direction: dir,
		Strength:  strength,
		composite: rl.Vector3Scale(dir, strength),
	}, nil
}

// Composite returns direction × strength.
func (f *Force) Composite() rl.Vector3 {
	return f.composite
}

// Entity returns the entity the force is attached to, or nil.
func (f *Force) Entity() *Entity {
	return f.entity
}
