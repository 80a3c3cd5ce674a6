package physics

import (
	"errors"
	"fmt"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	// ErrInvalidMass is returned when an entity's mass is zero, negative or NaN.
	ErrInvalidMass = errors.New("physics: mass must be positive")
	// ErrDetachedForce is returned when a force has no entity.
	ErrDetachedForce = errors.New("physics: force is not attached to an entity")
)

// IntegrationMode selects how a force changes velocity.
type IntegrationMode uint8

const (
	// ModeAccumulate blends the current velocity with the force direction and
	// adds speed on top of the existing velocity every tick.
	ModeAccumulate IntegrationMode = iota
	// ModeAcceleration is plain explicit Euler: v += F/m * dt.
	ModeAcceleration
)

func (m IntegrationMode) String() string {
	switch m {
	case ModeAccumulate:
		return "accumulate"
	case ModeAcceleration:
		return "acceleration"
	default:
		return fmt.Sprintf("IntegrationMode(%d)", uint8(m))
	}
}

// ParseIntegrationMode accepts the names returned by String.
func ParseIntegrationMode(s string) (IntegrationMode, error) {
	switch s {
	case "accumulate", "":
		return ModeAccumulate, nil
	case "acceleration":
		return ModeAcceleration, nil
	default:
		return 0, fmt.Errorf("unknown integration mode %q", s)
	}
}

// MassOf returns the entity's mass component value.
func MassOf(e *engine.Entity) (float32, error) {
	m, err := engine.Lookup[engine.Mass](e)
	if err != nil {
		return 0, err
	}
	if !(m.Value > 0) {
		return 0, fmt.Errorf("%w: entity %q has mass %v", ErrInvalidMass, e.Name, m.Value)
	}
	return m.Value, nil
}

// ApplyForce advances the velocity of the force's entity by one tick of dt.
// On error the velocity is left untouched.
func ApplyForce(f *engine.Force, dt float32, mode IntegrationMode) error {
	e := f.Entity()
	if e == nil {
		return ErrDetachedForce
	}
	mass, err := MassOf(e)
	if err != nil {
		return err
	}
	return applyComposite(e, f.Composite(), mass, dt, mode)
}

func applyComposite(e *engine.Entity, composite rl.Vector3, mass, dt float32, mode IntegrationMode) error {
	if mode == ModeAcceleration {
		e.Velocity = rl.Vector3Add(e.Velocity, rl.Vector3Scale(composite, dt/mass))
		return nil
	}

	v0 := e.Velocity
	target := (rl.Vector3Length(v0) + rl.Vector3Length(composite)*dt) / mass
	if target == 0 {
		return nil
	}
	dir, err := vmath.Normalize(rl.Vector3Add(v0, composite))
	if err != nil {
		return fmt.Errorf("force on %q: %w", e.Name, err)
	}
	e.Velocity = rl.Vector3Add(v0, rl.Vector3Scale(dir, target*dt))
	return nil
}

// Integrator advances dynamic entities by one fixed step.
type Integrator struct {
	Mode    IntegrationMode
	Gravity rl.Vector3
}

// Step applies e's forces in order, then extra (a per-tick force such as
// gravitational attraction), then uniform gravity, then moves e by its
// velocity. Force errors are joined and returned; the remaining forces are
// still applied.
func (in Integrator) Step(e *engine.Entity, dt float32, extra rl.Vector3) error {
	mass, err := MassOf(e)
	if err != nil {
		return err
	}

	var errs []error
	for _, f := range e.Forces() {
		if err := applyComposite(e, f.Composite(), mass, dt, in.Mode); err != nil {
			errs = append(errs, err)
		}
	}
	if !vmath.IsZero(extra) {
		if err := applyComposite(e, extra, mass, dt, in.Mode); err != nil {
			errs = append(errs, err)
		}
	}

	e.Velocity = rl.Vector3Add(e.Velocity, rl.Vector3Scale(in.Gravity, dt))
	e.Transform.Position = rl.Vector3Add(e.Transform.Position, rl.Vector3Scale(e.Velocity, dt))
	return errors.Join(errs...)
}
