package physics

import (
	"bytes"
	"fmt"
	"testing"

	"kinetic3d/internal/engine"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func BenchmarkIntersect(b *testing.B) {
	pairs := map[string][2]*Collider{
		"aabb-aabb":     {box(0, 0, 0, 2, 2, 2), box(1, 1, 1, 3, 3, 3)},
		"sphere-sphere": {sphere(0, 0, 0, 1), sphere(1.5, 0, 0, 1)},
		"aabb-sphere":   {box(0, 0, 0, 2, 2, 2), sphere(2.5, 1, 1, 1)},
		"aabb-plane":    {box(0, 0, 0, 2, 2, 2), plane(0, 1, 0, 0)},
	}
	for name, p := range pairs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = Intersect(p[0], p[1])
			}
		})
	}
}

func BenchmarkWorldTick(b *testing.B) {
	for _, n := range []int{16, 64, 256} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			w := NewWorld(nil, WorldOptions{
				Gravity:         rl.Vector3{Y: -9.81},
				ResolveContacts: true,
				Logger:          log.New(&bytes.Buffer{}),
			})
			for i := 0; i < n; i++ {
				e := engine.NewEntity(fmt.Sprintf("Body%d", i))
				e.Transform.Position = rl.Vector3{X: float32(i%8) * 1.5, Y: float32(i / 8)}
				e.AddComponent(engine.Mass{Value: 1})
				w.AddEntity(e)
				_ = w.AddCollider(NewSphereCollider(e, Sphere{Radius: 0.8}))
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				w.Tick(1.0 / 30)
			}
		})
	}
}
