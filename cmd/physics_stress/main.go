// Stress test for the narrow phase: every collider pair is tested each tick,
// so cost grows with n². Prints per-sweep time for growing collider counts.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	"kinetic3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	iterations := flag.Int("iterations", 10, "sweeps per collider count")
	flag.Parse()

	// Test various object counts
	testCounts := []int{100, 250, 500, 1000, 2000, 4000}

	for _, count := range testCounts {
		testNarrowPhase(count, *iterations)
	}
}

func testNarrowPhase(count, iterations int) {
	rng := rand.New(rand.NewPCG(42, 42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0
	randomPoint := func() rl.Vector3 {
		return rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
	}

	colliders := make([]*physics.Collider, 0, count)
	for i := 0; i < count; i++ {
		size := 0.5 + rng.Float32()*0.5
		if i%2 == 0 {
			s, _ := physics.NewSphere(randomPoint(), size)
			colliders = append(colliders, physics.NewSphereCollider(nil, s))
			continue
		}
		box := physics.NewAABBFromCenter(randomPoint(), rl.Vector3{X: 2 * size, Y: 2 * size, Z: 2 * size})
		colliders = append(colliders, physics.NewAABBCollider(nil, box))
	}

	start := time.Now()
	var pairs int
	for iter := 0; iter < iterations; iter++ {
		pairs = 0
		for i := 0; i < len(colliders); i++ {
			for j := i + 1; j < len(colliders); j++ {
				data, err := physics.Intersect(colliders[i], colliders[j])
				if err == nil && data.Intersecting {
					pairs++
				}
			}
		}
	}
	perSweep := time.Since(start) / time.Duration(iterations)
	tests := count * (count - 1) / 2

	fmt.Printf("%5d colliders: %10v per sweep (%8d tests, %4d pairs, %6.1f ns/test)\n",
		count, perSweep.Round(time.Microsecond), tests, pairs,
		float64(perSweep.Nanoseconds())/float64(tests))
}
