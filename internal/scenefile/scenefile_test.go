package scenefile

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/physics"

	"github.com/charmbracelet/log"
)

const testScene = `
name: Test
objects:
  - name: Ground
    position: [0, 0, 0]
    components:
      - type: PlaneCollider
        normal: [0, 2, 0]
        distance: 0
  - name: Crate
    tags: [crate]
    position: [1, 4, 0]
    components:
      - type: BoxCollider
        size: [1, 1, 1]
      - type: Mass
        value: 2
      - type: Force
        direction: [1, 0, 0]
        strength: 3
  - name: Planet
    position: [0, 10, 0]
    velocity: [0, 0, 1]
    components:
      - type: SphereCollider
        radius: 2
      - type: Mass
        value: 50
      - type: Attractor
`

func newWorld() *physics.World {
	return physics.NewWorld(nil, physics.WorldOptions{Logger: log.New(&bytes.Buffer{})})
}

func TestParseAndBuild(t *testing.T) {
	sf, err := Parse([]byte(testScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := newWorld()
	if err := sf.Build(w); err != nil {
		t.Fatalf("Build: %v", err)
	}

	cs := w.Colliders()
	if len(cs) != 3 {
		t.Fatalf("Expected 3 colliders, got %d", len(cs))
	}
	if p, ok := cs[0].Plane(); !ok || p.Normal.Y != 1 {
		t.Errorf("Expected a normalized ground plane, got %+v", p)
	}
	if box, ok := cs[1].AABB(); !ok || box.Min.X != -0.5 || box.Max.Y != 0.5 {
		t.Errorf("Expected a unit box centered on its owner, got %+v", box)
	}

	w.Mutate(func(scene *engine.Scene) {
		crate := scene.FindByName("Crate")
		if crate == nil || !crate.HasTag("crate") {
			t.Fatal("Crate missing or untagged")
		}
		if m, err := engine.Lookup[engine.Mass](crate); err != nil || m.Value != 2 {
			t.Errorf("Expected crate mass 2, got %v (%v)", m.Value, err)
		}
		if len(crate.Forces()) != 1 || crate.Forces()[0].Strength != 3 {
			t.Error("Expected one force of strength 3 on the crate")
		}
		planet := scene.FindByName("Planet")
		if !engine.Has[engine.Attractor](planet) || planet.Velocity.Z != 1 {
			t.Error("Expected the planet to be an attractor with initial velocity")
		}
		if planet.Transform.Scale.X != 1 {
			t.Errorf("Expected default scale 1, got %v", planet.Transform.Scale)
		}
	})
}

func TestBuildRejectsUnknownComponent(t *testing.T) {
	sf, err := Parse([]byte("objects:\n  - name: Lamp\n    position: [0, 0, 0]\n    components:\n      - type: DirectionalLight\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := newWorld()
	if err := sf.Build(w); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("Expected ErrUnknownComponent, got %v", err)
	}
	w.Mutate(func(scene *engine.Scene) {
		if scene.Len() != 0 {
			t.Error("Expected nothing to be added on error")
		}
	})
}

func TestBuildRejectsInvalidShapes(t *testing.T) {
	cases := map[string]string{
		"radius": "objects:\n  - name: A\n    position: [0, 0, 0]\n    components:\n      - {type: SphereCollider, radius: -1}\n",
		"normal": "objects:\n  - name: A\n    position: [0, 0, 0]\n    components:\n      - {type: PlaneCollider, normal: [0, 0, 0], distance: 1}\n",
		"mass":   "objects:\n  - name: A\n    position: [0, 0, 0]\n    components:\n      - {type: Mass, value: 0}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			sf, err := Parse([]byte(src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := sf.Build(newWorld()); err == nil {
				t.Error("Expected a build error")
			}
		})
	}
}

func TestCaptureSaveLoad(t *testing.T) {
	sf, _ := Parse([]byte(testScene))
	w := newWorld()
	if err := sf.Build(w); err != nil {
		t.Fatalf("Build: %v", err)
	}

	captured, err := Capture(w)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := captured.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w2 := newWorld()
	if err := loaded.Build(w2); err != nil {
		t.Fatalf("Build of saved scene: %v", err)
	}
	if len(w2.Colliders()) != 3 {
		t.Errorf("Expected 3 colliders after reload, got %d", len(w2.Colliders()))
	}
	w2.Mutate(func(scene *engine.Scene) {
		crate := scene.FindByName("Crate")
		if crate == nil || crate.Transform.Position.Y != 4 || len(crate.Forces()) != 1 {
			t.Errorf("Crate not restored: %+v", crate)
		}
	})
}
