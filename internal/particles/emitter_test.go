package particles

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestEmitterBurst(t *testing.T) {
	e := NewEmitter("spark", 42)
	e.Speed = 4
	origin := rl.Vector3{X: 1, Y: 2, Z: 3}

	burst := e.Burst(origin, 16)
	if len(burst) != 16 {
		t.Fatalf("Expected 16 particles, got %d", len(burst))
	}
	for i, p := range burst {
		if p.Key != "spark" || p.Position != origin {
			t.Errorf("Particle %d: unexpected key/position %q %v", i, p.Key, p.Position)
		}
		speed := rl.Vector3Length(p.Velocity)
		if speed < 2-1e-4 || speed > 4+1e-4 {
			t.Errorf("Particle %d: speed %v outside [2, 4]", i, speed)
		}
		if p.Velocity.Y < 0 {
			t.Errorf("Particle %d: expected upward-biased velocity, got %v", i, p.Velocity)
		}
	}
}

func TestEmitterIsDeterministicPerSeed(t *testing.T) {
	a := NewEmitter("k", 7).Burst(rl.Vector3{}, 8)
	b := NewEmitter("k", 7).Burst(rl.Vector3{}, 8)
	for i := range a {
		if a[i].Velocity != b[i].Velocity {
			t.Fatalf("Particle %d differs between identically seeded emitters", i)
		}
	}
}

func TestEmitterBurstNonPositiveCount(t *testing.T) {
	e := NewEmitter("k", 3)
	for _, n := range []int{0, -5} {
		if burst := e.Burst(rl.Vector3{}, n); burst != nil {
			t.Errorf("Count %d: expected nil, got %d particles", n, len(burst))
		}
	}
}
