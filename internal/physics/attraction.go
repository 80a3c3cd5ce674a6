package physics

import (
	"fmt"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/vmath"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Attraction returns the gravitational pull on a toward b: G·ma·mb/r².
// Either entity lacking a mass component yields a *engine.ComponentMissingError.
func Attraction(a, b *engine.Entity, g float32) (rl.Vector3, error) {
	ma, err := engine.Lookup[engine.Mass](a)
	if err != nil {
		return rl.Vector3{}, err
	}
	mb, err := engine.Lookup[engine.Mass](b)
	if err != nil {
		return rl.Vector3{}, err
	}

	delta := rl.Vector3Subtract(b.Transform.Position, a.Transform.Position)
	dir, err := vmath.Normalize(delta)
	if err != nil {
		return rl.Vector3{}, fmt.Errorf("attraction %q -> %q: %w", a.Name, b.Name, err)
	}
	distSq := rl.Vector3DotProduct(delta, delta)
	return rl.Vector3Scale(dir, g*ma.Value*mb.Value/distSq), nil
}

// AttractionOrZero is the recoverable form of Attraction: failures are logged
// and contribute nothing, so the tick carries on.
func AttractionOrZero(a, b *engine.Entity, g float32, logger *log.Logger) rl.Vector3 {
	f, err := Attraction(a, b, g)
	if err != nil {
		logger.Warn("Physics: attraction skipped", "from", a.Name, "to", b.Name, "err", err)
		return rl.Vector3{}
	}
	return f
}
