package engine

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrForceAttached is returned when a force already belongs to an entity.
var ErrForceAttached = errors.New("force already attached to an entity")

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// Entity is a simulated object. Its transform and velocity are mutated by the
// physics world only while the world lock is held.
type Entity struct {
	Name      string
	Tags      []string
	Transform Transform
	Velocity  rl.Vector3
	Scene     *Scene

	components map[Kind]Component
	kinds      []Kind
	forces     []*Force
}

func NewEntity(name string) *Entity {
	return &Entity{
		Name: name,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make(map[Kind]Component),
	}
}

// AddComponent attaches c, replacing any component of the same kind.
func (e *Entity) AddComponent(c Component) {
	if e.components == nil {
		e.components = make(map[Kind]Component)
	}
	kind := c.Kind()
	if _, exists := e.components[kind]; !exists {
		e.kinds = append(e.kinds, kind)
	}
	e.components[kind] = c
}

// RemoveComponent detaches the component of the given kind, if any.
func (e *Entity) RemoveComponent(kind Kind) {
	if _, ok := e.components[kind]; !ok {
		return
	}
	delete(e.components, kind)
	for i, k := range e.kinds {
		if k == kind {
			e.kinds = append(e.kinds[:i], e.kinds[i+1:]...)
			return
		}
	}
}

// Components returns attached components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.kinds))
	for _, k := range e.kinds {
		out = append(out, e.components[k])
	}
	return out
}

// AddForce attaches f to e. Forces are applied in the order they were added.
func (e *Entity) AddForce(f *Force) error {
	if f.entity != nil {
		return ErrForceAttached
	}
	f.entity = e
	e.forces = append(e.forces, f)
	return nil
}

// RemoveForce detaches f. It reports whether f was attached to e.
func (e *Entity) RemoveForce(f *Force) bool {
	for i, existing := range e.forces {
		if existing == f {
			e.forces = append(e.forces[:i], e.forces[i+1:]...)
			f.entity = nil
			return true
		}
	}
	return false
}

// Forces returns the attached forces. The slice must not be modified.
func (e *Entity) Forces() []*Force {
	return e.forces
}

func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
