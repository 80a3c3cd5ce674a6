// Package particles owns short-lived render particles grouped into buckets by
// texture/category key. The render loop advances them once per frame and
// reads back per-key transform batches.
package particles

import rl "github.com/gen2brain/raylib-go/raylib"

// Key identifies a bucket, usually the texture the particles are drawn with.
type Key string

type Particle struct {
	Key          Key
	Position     rl.Vector3
	Velocity     rl.Vector3
	Rotation     rl.Vector3 // Euler angles in degrees
	Scale        rl.Vector3
	GravityScale float32
	Lifespan     float32 // seconds

	elapsed float32
	expired bool

	state addState // guarded by the owning Manager's inbox lock
}

type addState uint8

const (
	stateFree addState = iota
	stateOwned
	stateRetired
)

// Elapsed is the total frame time the particle has lived through.
func (p *Particle) Elapsed() float32 {
	return p.elapsed
}

// Expired reports whether the particle has been removed from its bucket.
func (p *Particle) Expired() bool {
	return p.expired
}

// Remaining returns the lifetime left, never negative.
func (p *Particle) Remaining() float32 {
	if p.elapsed >= p.Lifespan {
		return 0
	}
	return p.Lifespan - p.elapsed
}

// advance applies one frame of kinematics and reports whether the particle
// reached the end of its life.
func (p *Particle) advance(gravity, dt float32) bool {
	p.Velocity.Y += gravity * p.GravityScale * dt
	p.Position = rl.Vector3Add(p.Position, rl.Vector3Scale(p.Velocity, dt))
	p.elapsed += dt
	return p.elapsed >= p.Lifespan
}

// Instance is the per-particle transform handed to the renderer.
type Instance struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
}

// Batch holds copies of every live particle transform for one key, in
// insertion order.
type Batch struct {
	Key       Key
	Instances []Instance
}
