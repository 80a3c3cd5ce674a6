package physics

import (
	"errors"
	"fmt"

	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrInvalidShape is returned by shape constructors for malformed geometry.
var ErrInvalidShape = errors.New("physics: invalid shape")

// Shape tags the geometric variant held by a Collider.
type Shape uint8

const (
	ShapeAABB Shape = iota
	ShapeSphere
	ShapePlane

	shapeCount
)

func (s Shape) String() string {
	switch s {
	case ShapeAABB:
		return "AABB"
	case ShapeSphere:
		return "Sphere"
	case ShapePlane:
		return "Plane"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABB validates that min <= max on every axis.
func NewAABB(min, max rl.Vector3) (AABB, error) {
	if !vmath.IsFinite(min) || !vmath.IsFinite(max) {
		return AABB{}, fmt.Errorf("%w: non-finite box corners", ErrInvalidShape)
	}
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return AABB{}, fmt.Errorf("%w: box min %v exceeds max %v", ErrInvalidShape, min, max)
	}
	return AABB{Min: min, Max: max}, nil
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Subtract(a.Max, a.Min), 0.5)
}

func (a AABB) Translate(offset rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Add(a.Min, offset), Max: rl.Vector3Add(a.Max, offset)}
}

// BoundingBox converts to raylib's box type for debug drawing.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}

// ClosestPoint returns the point inside the box nearest to p.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: vmath.Clamp(p.X, a.Min.X, a.Max.X),
		Y: vmath.Clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: vmath.Clamp(p.Z, a.Min.Z, a.Max.Z),
	}
}

type Sphere struct {
	Center rl.Vector3
	Radius float32
}

func NewSphere(center rl.Vector3, radius float32) (Sphere, error) {
	if !vmath.IsFinite(center) {
		return Sphere{}, fmt.Errorf("%w: non-finite sphere center", ErrInvalidShape)
	}
	if !(radius >= 0) {
		return Sphere{}, fmt.Errorf("%w: sphere radius %v", ErrInvalidShape, radius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

func (s Sphere) Translate(offset rl.Vector3) Sphere {
	return Sphere{Center: rl.Vector3Add(s.Center, offset), Radius: s.Radius}
}

// Plane is the set of points x with Normal·x + Distance = 0.
type Plane struct {
	Normal   rl.Vector3 // unit length
	Distance float32
}

// NewPlane normalizes normal and rescales distance so the described plane is
// unchanged. A zero normal is rejected with vmath.ErrDegenerateVector.
func NewPlane(normal rl.Vector3, distance float32) (Plane, error) {
	l := rl.Vector3Length(normal)
	n, err := vmath.Normalize(normal)
	if err != nil {
		return Plane{}, fmt.Errorf("plane normal %v: %w", normal, err)
	}
	return Plane{Normal: n, Distance: distance / l}, nil
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) + p.Distance
}

func (p Plane) Translate(offset rl.Vector3) Plane {
	return Plane{Normal: p.Normal, Distance: p.Distance - rl.Vector3DotProduct(p.Normal, offset)}
}
