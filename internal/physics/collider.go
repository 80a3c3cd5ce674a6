package physics

import (
	"kinetic3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider is a tagged variant over the supported shapes. Geometry is stored in
// the owner's local space; a nil owner marks static world geometry.
// The owner is fixed at construction.
type Collider struct {
	shape  Shape
	aabb   AABB
	sphere Sphere
	plane  Plane
	owner  *engine.Entity
}

func NewAABBCollider(owner *engine.Entity, box AABB) *Collider {
	return &Collider{shape: ShapeAABB, aabb: box, owner: owner}
}

func NewSphereCollider(owner *engine.Entity, sphere Sphere) *Collider {
	return &Collider{shape: ShapeSphere, sphere: sphere, owner: owner}
}

func NewPlaneCollider(owner *engine.Entity, plane Plane) *Collider {
	return &Collider{shape: ShapePlane, plane: plane, owner: owner}
}

func (c *Collider) Shape() Shape {
	return c.shape
}

func (c *Collider) Owner() *engine.Entity {
	return c.owner
}

func (c *Collider) AABB() (AABB, bool) {
	return c.aabb, c.shape == ShapeAABB
}

func (c *Collider) Sphere() (Sphere, bool) {
	return c.sphere, c.shape == ShapeSphere
}

func (c *Collider) Plane() (Plane, bool) {
	return c.plane, c.shape == ShapePlane
}

// World returns a copy of the collider translated by its owner's position.
func (c *Collider) World() Collider {
	out := *c
	if c.owner == nil {
		return out
	}
	offset := c.owner.Transform.Position
	switch c.shape {
	case ShapeAABB:
		out.aabb = c.aabb.Translate(offset)
	case ShapeSphere:
		out.sphere = c.sphere.Translate(offset)
	case ShapePlane:
		out.plane = c.plane.Translate(offset)
	}
	return out
}

// dynamic reports whether the owner can be moved by contact resolution.
func (c *Collider) dynamic() bool {
	return c.owner != nil && engine.Has[engine.Mass](c.owner)
}

func (c *Collider) ownerName() string {
	if c.owner == nil {
		return "static"
	}
	return c.owner.Name
}
