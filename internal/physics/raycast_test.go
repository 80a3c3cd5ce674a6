package physics

import (
	"errors"
	"testing"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRaycastClosestHit(t *testing.T) {
	w, _ := quietWorld(WorldOptions{})
	near := box(4, -1, -1, 6, 1, 1)
	far := sphere(10, 0, 0, 1)
	_ = w.AddCollider(far)
	_ = w.AddCollider(near)

	hit, ok, err := w.Raycast(rl.Vector3{}, rl.Vector3{X: 2}, 100)
	if err != nil || !ok {
		t.Fatalf("Expected a hit, got ok=%v err=%v", ok, err)
	}
	if hit.Collider != near {
		t.Error("Expected the nearer box to be hit")
	}
	if !approx(hit.Distance, 4) || !approxVec(hit.Normal, rl.Vector3{X: -1}) {
		t.Errorf("Expected distance 4 with normal -X, got %v %v", hit.Distance, hit.Normal)
	}
}

func TestRaycastSphereAndMaxDistance(t *testing.T) {
	w, _ := quietWorld(WorldOptions{})
	e := engine.NewEntity("Ball")
	e.Transform.Position = rl.Vector3{Z: 5}
	w.AddEntity(e)
	_ = w.AddCollider(NewSphereCollider(e, Sphere{Radius: 1}))

	hit, ok, _ := w.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 10)
	if !ok || hit.Entity != e {
		t.Fatalf("Expected to hit Ball, got %+v", hit)
	}
	if !approx(hit.Distance, 4) || !approxVec(hit.Normal, rl.Vector3{Z: -1}) {
		t.Errorf("Expected distance 4 with normal -Z, got %v %v", hit.Distance, hit.Normal)
	}

	if _, ok, _ := w.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 3); ok {
		t.Error("Expected no hit beyond maxDistance")
	}
}

func TestRaycastPlane(t *testing.T) {
	w, _ := quietWorld(WorldOptions{})
	_ = w.AddCollider(plane(0, 1, 0, 0))

	hit, ok, _ := w.Raycast(rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: -1}, 100)
	if !ok {
		t.Fatal("Expected to hit the ground")
	}
	if !approxVec(hit.Point, rl.Vector3{X: 3}) || !approxVec(hit.Normal, rl.Vector3{Y: 1}) {
		t.Errorf("Expected hit at (3,0,0) facing +Y, got %v %v", hit.Point, hit.Normal)
	}

	if _, ok, _ := w.Raycast(rl.Vector3{Y: 3}, rl.Vector3{X: 1}, 100); ok {
		t.Error("Expected a parallel ray to miss")
	}
}

func TestRaycastFromInsideBox(t *testing.T) {
	w, _ := quietWorld(WorldOptions{})
	_ = w.AddCollider(box(-1, -1, -1, 1, 1, 1))

	hit, ok, _ := w.Raycast(rl.Vector3{}, rl.Vector3{Y: 1}, 10)
	if !ok || !approx(hit.Distance, 1) || !approxVec(hit.Normal, rl.Vector3{Y: 1}) {
		t.Errorf("Expected exit hit at distance 1 facing +Y, got ok=%v %+v", ok, hit)
	}
}

func TestRaycastDegenerateDirection(t *testing.T) {
	w, _ := quietWorld(WorldOptions{})
	if _, _, err := w.Raycast(rl.Vector3{}, rl.Vector3{}, 10); !errors.Is(err, vmath.ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector, got %v", err)
	}
}
