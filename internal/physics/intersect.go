package physics

import (
	"errors"
	"fmt"

	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNilCollider is returned when Intersect receives a nil collider.
var ErrNilCollider = errors.New("physics: nil collider")

// IntersectData is the result of a pairwise test.
// Distance <= 0 means touching or overlapping; its magnitude is the
// translation needed to separate the pair along Normal.
type IntersectData struct {
	Intersecting bool
	Distance     float32
	Axis         int        // separating axis for box pairs, -1 otherwise
	Normal       rl.Vector3 // unit, from the first collider toward the second
}

// Depth returns the penetration depth, zero when separated.
func (d IntersectData) Depth() float32 {
	if d.Distance < 0 {
		return -d.Distance
	}
	return 0
}

func (d IntersectData) flip() IntersectData {
	d.Normal = rl.Vector3Negate(d.Normal)
	return d
}

var up = rl.Vector3{Y: 1}

type intersectFunc func(a, b Collider) IntersectData

// dispatch enumerates every ordered shape pairing. Reverse-order cells reuse the
// forward test so the verdict is symmetric by construction.
var dispatch = [shapeCount][shapeCount]intersectFunc{
	ShapeAABB: {
		ShapeAABB:   func(a, b Collider) IntersectData { return intersectAABBs(a.aabb, b.aabb) },
		ShapeSphere: func(a, b Collider) IntersectData { return intersectAABBSphere(a.aabb, b.sphere) },
		ShapePlane:  func(a, b Collider) IntersectData { return intersectAABBPlane(a.aabb, b.plane) },
	},
	ShapeSphere: {
		ShapeAABB:   func(a, b Collider) IntersectData { return intersectAABBSphere(b.aabb, a.sphere).flip() },
		ShapeSphere: func(a, b Collider) IntersectData { return intersectSpheres(a.sphere, b.sphere) },
		ShapePlane:  func(a, b Collider) IntersectData { return intersectPlaneSphere(b.plane, a.sphere).flip() },
	},
	ShapePlane: {
		ShapeAABB:   func(a, b Collider) IntersectData { return intersectAABBPlane(b.aabb, a.plane).flip() },
		ShapeSphere: func(a, b Collider) IntersectData { return intersectPlaneSphere(a.plane, b.sphere) },
		ShapePlane:  func(a, b Collider) IntersectData { return intersectPlanes(a.plane, b.plane) },
	},
}

// Intersect tests two colliders in world space.
func Intersect(a, b *Collider) (IntersectData, error) {
	if a == nil || b == nil {
		return IntersectData{}, ErrNilCollider
	}
	if a.shape >= shapeCount || b.shape >= shapeCount {
		return IntersectData{}, fmt.Errorf("%w: %s x %s", ErrInvalidShape, a.shape, b.shape)
	}
	return dispatch[a.shape][b.shape](a.World(), b.World()), nil
}

// intersectAABBs takes the component-wise max of the two face gaps and reports
// its largest component. Equal components resolve to the lowest axis.
func intersectAABBs(a, b AABB) IntersectData {
	gapA := rl.Vector3Subtract(b.Min, a.Max)
	gapB := rl.Vector3Subtract(a.Min, b.Max)
	dist, axis := vmath.MaxComponent(rl.Vector3Max(gapA, gapB))

	normal := vmath.Axis(axis)
	if vmath.Component(b.Center(), axis) < vmath.Component(a.Center(), axis) {
		normal = rl.Vector3Negate(normal)
	}
	return IntersectData{Intersecting: dist < 0, Distance: dist, Axis: axis, Normal: normal}
}

func intersectSpheres(a, b Sphere) IntersectData {
	delta := rl.Vector3Subtract(b.Center, a.Center)
	centerDist := rl.Vector3Length(delta)
	radii := a.Radius + b.Radius

	normal, err := vmath.Normalize(delta)
	if err != nil {
		// concentric spheres
		normal = up
	}
	return IntersectData{
		Intersecting: centerDist < radii,
		Distance:     centerDist - radii,
		Axis:         -1,
		Normal:       normal,
	}
}

func intersectPlaneSphere(p Plane, s Sphere) IntersectData {
	signed := p.SignedDistance(s.Center)
	dist := vmath.Abs(signed) - s.Radius
	return IntersectData{
		Intersecting: dist < 0,
		Distance:     dist,
		Axis:         -1,
		Normal:       rl.Vector3Scale(p.Normal, vmath.Sign(signed)),
	}
}

func intersectAABBSphere(box AABB, s Sphere) IntersectData {
	closest := box.ClosestPoint(s.Center)
	delta := rl.Vector3Subtract(s.Center, closest)
	if normal, err := vmath.Normalize(delta); err == nil {
		dist := rl.Vector3Length(delta) - s.Radius
		return IntersectData{Intersecting: dist < 0, Distance: dist, Axis: -1, Normal: normal}
	}

	// Center inside the box: push out through the nearest face.
	best := float32(-1)
	var normal rl.Vector3
	for axis := 0; axis < 3; axis++ {
		c := vmath.Component(s.Center, axis)
		toMin := c - vmath.Component(box.Min, axis)
		toMax := vmath.Component(box.Max, axis) - c
		if best < 0 || toMin < best {
			best = toMin
			normal = rl.Vector3Negate(vmath.Axis(axis))
		}
		if toMax < best {
			best = toMax
			normal = vmath.Axis(axis)
		}
	}
	dist := -(best + s.Radius)
	return IntersectData{Intersecting: dist < 0, Distance: dist, Axis: -1, Normal: normal}
}

func intersectAABBPlane(box AABB, p Plane) IntersectData {
	half := box.HalfExtents()
	projected := half.X*vmath.Abs(p.Normal.X) + half.Y*vmath.Abs(p.Normal.Y) + half.Z*vmath.Abs(p.Normal.Z)
	signed := p.SignedDistance(box.Center())
	dist := vmath.Abs(signed) - projected
	return IntersectData{
		Intersecting: dist < 0,
		Distance:     dist,
		Axis:         -1,
		// the plane lies opposite the side the box center is on
		Normal: rl.Vector3Scale(p.Normal, -vmath.Sign(signed)),
	}
}

// intersectPlanes: crossing planes always intersect with zero distance; parallel
// planes report the gap between them and intersect only when coincident.
func intersectPlanes(a, b Plane) IntersectData {
	cross := rl.Vector3CrossProduct(a.Normal, b.Normal)
	if rl.Vector3Length(cross) > vmath.Epsilon {
		return IntersectData{Intersecting: true, Distance: 0, Axis: -1}
	}
	bDist := b.Distance
	if rl.Vector3DotProduct(a.Normal, b.Normal) < 0 {
		bDist = -bDist
	}
	gap := a.Distance - bDist
	return IntersectData{
		Intersecting: vmath.Abs(gap) <= vmath.Epsilon,
		Distance:     vmath.Abs(gap),
		Axis:         -1,
		Normal:       rl.Vector3Scale(a.Normal, vmath.Sign(gap)),
	}
}
