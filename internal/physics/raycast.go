package physics

import (
	"fmt"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/vmath"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Collider *Collider
	Entity   *engine.Entity // nil for static world geometry
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast checks the ray against every registered collider and returns the
// closest hit within maxDistance. A ray starting inside a shape hits its far side.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool, error) {
	dir, err := vmath.Normalize(direction)
	if err != nil {
		return RaycastHit{}, false, fmt.Errorf("ray direction: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	closest := RaycastHit{Distance: maxDistance}
	hit := false
	for _, c := range w.colliders {
		wc := c.World()
		var info RaycastHit
		var ok bool
		switch wc.shape {
		case ShapeAABB:
			info, ok = raycastBox(origin, dir, wc.aabb, maxDistance)
		case ShapeSphere:
			info, ok = raycastSphere(origin, dir, wc.sphere, maxDistance)
		case ShapePlane:
			info, ok = raycastPlane(origin, dir, wc.plane, maxDistance)
		}
		if ok && info.Distance <= closest.Distance {
			closest = info
			closest.Collider = c
			closest.Entity = c.owner
			hit = true
		}
	}
	return closest, hit, nil
}

// raycastBox is the slab test; direction must be unit length.
func raycastBox(origin, direction rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	tmin, tmax := float32(-math32.MaxFloat32), float32(math32.MaxFloat32)
	enterAxis, exitAxis := 0, 0

	for axis := 0; axis < 3; axis++ {
		o := vmath.Component(origin, axis)
		d := vmath.Component(direction, axis)
		lo := vmath.Component(box.Min, axis)
		hi := vmath.Component(box.Max, axis)
		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, enterAxis = t1, axis
		}
		if t2 < tmax {
			tmax, exitAxis = t2, axis
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	t, axis, sign := tmin, enterAxis, float32(-1)
	if t < 0 {
		// Origin is inside the box
		t, axis, sign = tmax, exitAxis, 1
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	normal := rl.Vector3Scale(vmath.Axis(axis), sign*vmath.Sign(vmath.Component(direction, axis)))
	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   normal,
		Distance: t,
	}, true
}

func raycastSphere(origin, direction rl.Vector3, sphere Sphere, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, sphere.Center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	root := math32.Sqrt(discriminant)
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal, err := vmath.Normalize(rl.Vector3Subtract(point, sphere.Center))
	if err != nil {
		normal = rl.Vector3Negate(direction)
	}
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastPlane(origin, direction rl.Vector3, plane Plane, maxDistance float32) (RaycastHit, bool) {
	denom := rl.Vector3DotProduct(plane.Normal, direction)
	if vmath.Abs(denom) < vmath.Epsilon {
		return RaycastHit{}, false // parallel
	}
	t := -plane.SignedDistance(origin) / denom
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	// Report the face the ray arrived from
	normal := plane.Normal
	if denom > 0 {
		normal = rl.Vector3Negate(normal)
	}
	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   normal,
		Distance: t,
	}, true
}
