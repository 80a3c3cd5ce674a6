// Package vmath holds the small vector helpers the physics core needs on top
// of raylib's raymath, most importantly a normalize that refuses zero-length
// input instead of producing NaNs.
package vmath

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/constraints"
)

// Epsilon is the length below which a vector counts as zero.
const Epsilon = 1e-6

// ErrDegenerateVector is returned when a zero-length or non-finite vector is
// fed to an operation that needs a direction.
var ErrDegenerateVector = errors.New("vmath: degenerate vector")

// Normalize returns v scaled to unit length.
func Normalize(v rl.Vector3) (rl.Vector3, error) {
	if !IsFinite(v) {
		return rl.Vector3{}, ErrDegenerateVector
	}
	l := rl.Vector3Length(v)
	if l < Epsilon {
		return rl.Vector3{}, ErrDegenerateVector
	}
	return rl.Vector3Scale(v, 1/l), nil
}

// IsFinite reports whether no component is NaN or infinite.
func IsFinite(v rl.Vector3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// IsZero reports whether all components are exactly zero.
func IsZero(v rl.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Component returns the value of v along axis 0=X, 1=Y, 2=Z.
func Component(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Axis returns the unit vector for axis 0=X, 1=Y, 2=Z.
func Axis(axis int) rl.Vector3 {
	switch axis {
	case 0:
		return rl.Vector3{X: 1}
	case 1:
		return rl.Vector3{Y: 1}
	default:
		return rl.Vector3{Z: 1}
	}
}

// MaxComponent returns the largest component of v and its axis.
// Equal components resolve to the lowest axis index.
func MaxComponent(v rl.Vector3) (float32, int) {
	best, axis := v.X, 0
	if v.Y > best {
		best, axis = v.Y, 1
	}
	if v.Z > best {
		best, axis = v.Z, 2
	}
	return best, axis
}

// Clamp restricts a value to a range
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns |v|.
func Abs(v float32) float32 {
	return math32.Abs(v)
}

// IsFiniteScalar reports whether f is neither NaN nor infinite.
func IsFiniteScalar(f float32) bool {
	return isFinite(f)
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
