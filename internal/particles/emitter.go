package particles

import (
	"math/rand/v2"

	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Emitter builds bursts of particles with randomized directions. It is not
// safe for concurrent use; give each goroutine its own.
type Emitter struct {
	Key          Key
	Speed        float32 // initial speed; each particle gets 50-100% of it
	Lifespan     float32
	GravityScale float32
	Scale        rl.Vector3

	rng *rand.Rand
}

func NewEmitter(key Key, seed uint64) *Emitter {
	if seed == 0 {
		seed = 1
	}
	return &Emitter{
		Key:          key,
		Speed:        5,
		Lifespan:     1,
		GravityScale: 1,
		Scale:        rl.Vector3{X: 1, Y: 1, Z: 1},
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Burst returns count particles leaving origin in random upward-biased directions.
func (e *Emitter) Burst(origin rl.Vector3, count int) []*Particle {
	if count <= 0 {
		return nil
	}
	out := make([]*Particle, 0, count)
	for range count {
		dir := rl.Vector3{
			X: e.rng.Float32()*2 - 1,
			Y: e.rng.Float32(),
			Z: e.rng.Float32()*2 - 1,
		}
		n, err := vmath.Normalize(dir)
		if err != nil {
			n = rl.Vector3{Y: 1}
		}
		speed := e.Speed * (0.5 + e.rng.Float32()*0.5)
		out = append(out, &Particle{
			Key:          e.Key,
			Position:     origin,
			Velocity:     rl.Vector3Scale(n, speed),
			Rotation:     rl.Vector3{Z: e.rng.Float32() * 360},
			Scale:        e.Scale,
			GravityScale: e.GravityScale,
			Lifespan:     e.Lifespan,
		})
	}
	return out
}
