package physics

import (
	"errors"
	"testing"

	"kinetic3d/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewAABBValidates(t *testing.T) {
	if _, err := NewAABB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}); err != nil {
		t.Fatalf("Valid box rejected: %v", err)
	}
	if _, err := NewAABB(rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 1, Z: 1}); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected ErrInvalidShape for inverted box, got %v", err)
	}
}

func TestNewAABBFromCenter(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{X: 2, Y: 4, Z: 2})
	if box.Min != (rl.Vector3{X: 0, Y: -1, Z: 0}) || box.Max != (rl.Vector3{X: 2, Y: 3, Z: 2}) {
		t.Errorf("Unexpected box %v", box)
	}
	if box.Center() != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected center (1,1,1), got %v", box.Center())
	}
	if box.HalfExtents() != (rl.Vector3{X: 1, Y: 2, Z: 1}) {
		t.Errorf("Expected half extents (1,2,1), got %v", box.HalfExtents())
	}
}

func TestNewSphereValidates(t *testing.T) {
	if _, err := NewSphere(rl.Vector3{}, -1); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected ErrInvalidShape for negative radius, got %v", err)
	}
	if _, err := NewSphere(rl.Vector3{}, 0); err != nil {
		t.Errorf("Zero radius should be allowed, got %v", err)
	}
}

func TestNewPlaneNormalizes(t *testing.T) {
	p, err := NewPlane(rl.Vector3{Y: 2}, -4)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	if p.Normal != (rl.Vector3{Y: 1}) || p.Distance != -2 {
		t.Errorf("Expected y=2 plane as (0,1,0)/-2, got %v/%v", p.Normal, p.Distance)
	}
	if got := p.SignedDistance(rl.Vector3{Y: 5}); got != 3 {
		t.Errorf("Expected signed distance 3, got %v", got)
	}
}

func TestNewPlaneRejectsZeroNormal(t *testing.T) {
	if _, err := NewPlane(rl.Vector3{}, 1); !errors.Is(err, vmath.ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector, got %v", err)
	}
}

func TestPlaneTranslate(t *testing.T) {
	p, _ := NewPlane(rl.Vector3{Y: 1}, 0)
	moved := p.Translate(rl.Vector3{X: 7, Y: 3})
	if got := moved.SignedDistance(rl.Vector3{Y: 3}); got != 0 {
		t.Errorf("Point on translated plane should have distance 0, got %v", got)
	}
}
