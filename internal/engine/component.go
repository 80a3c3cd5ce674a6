package engine

import (
	"errors"
	"fmt"
)

// Kind tags a component type. An entity holds at most one component per kind.
type Kind string

const (
	KindMass      Kind = "mass"
	KindAttractor Kind = "attractor"
)

// Component is plain data attached to an entity.
// Kind must be implemented on a value receiver: Lookup calls it on the zero value.
type Component interface {
	Kind() Kind
}

// ErrComponentMissing is the sentinel wrapped by every ComponentMissingError.
var ErrComponentMissing = errors.New("component missing")

// ComponentMissingError reports a failed capability check on an entity.
type ComponentMissingError struct {
	Entity string
	Kind   Kind
}

func (e *ComponentMissingError) Error() string {
	return fmt.Sprintf("entity %q has no %s component", e.Entity, e.Kind)
}

func (e *ComponentMissingError) Unwrap() error {
	return ErrComponentMissing
}

// Mass makes an entity dynamic. Entities without it are immovable.
type Mass struct {
	Value float32
}

func (Mass) Kind() Kind { return KindMass }

// Attractor opts an entity into pairwise gravitational attraction.
type Attractor struct{}

func (Attractor) Kind() Kind { return KindAttractor }

// Lookup returns the component of type T attached to e.
func Lookup[T Component](e *Entity) (T, error) {
	var zero T
	kind := zero.Kind()
	c, ok := e.components[kind]
	if !ok {
		return zero, &ComponentMissingError{Entity: e.Name, Kind: kind}
	}
	typed, ok := c.(T)
	if !ok {
		// another type registered under the same kind
		return zero, &ComponentMissingError{Entity: e.Name, Kind: kind}
	}
	return typed, nil
}

// Has reports whether e carries a component of type T.
func Has[T Component](e *Entity) bool {
	_, err := Lookup[T](e)
	return err == nil
}
