// Package scenefile reads and writes YAML scene descriptions: named objects
// with a transform and a list of typed physics components.
package scenefile

import (
	"errors"
	"fmt"
	"os"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var ErrUnknownComponent = errors.New("scenefile: unknown component type")

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name,omitempty"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name       string      `yaml:"name"`
	Tags       []string    `yaml:"tags,omitempty"`
	Position   [3]float32  `yaml:"position,flow"`
	Rotation   [3]float32  `yaml:"rotation,flow,omitempty"`
	Scale      [3]float32  `yaml:"scale,flow,omitempty"`
	Velocity   [3]float32  `yaml:"velocity,flow,omitempty"`
	Components []yaml.Node `yaml:"components,omitempty"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type boxColliderDef struct {
	Type   string     `yaml:"type"`
	Size   [3]float32 `yaml:"size,flow"`
	Offset [3]float32 `yaml:"offset,flow,omitempty"`
}

type sphereColliderDef struct {
	Type   string     `yaml:"type"`
	Radius float32    `yaml:"radius"`
	Offset [3]float32 `yaml:"offset,flow,omitempty"`
}

type planeColliderDef struct {
	Type     string     `yaml:"type"`
	Normal   [3]float32 `yaml:"normal,flow"`
	Distance float32    `yaml:"distance"`
}

type massDef struct {
	Type  string  `yaml:"type"`
	Value float32 `yaml:"value"`
}

type attractorDef struct {
	Type string `yaml:"type"`
}

type forceDef struct {
	Type      string     `yaml:"type"`
	Direction [3]float32 `yaml:"direction,flow"`
	Strength  float32    `yaml:"strength"`
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

func Load(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &sf, nil
}

// Build adds every object to w as an entity with its components and colliders.
// Component errors are reported before anything is added to w.
func (sf *SceneFile) Build(w *physics.World) error {
	type built struct {
		entity    *engine.Entity
		colliders []*physics.Collider
	}
	var all []built

	for _, def := range sf.Objects {
		e := engine.NewEntity(def.Name)
		e.Tags = def.Tags
		e.Transform.Position = vec(def.Position)
		e.Transform.Rotation = vec(def.Rotation)
		e.Velocity = vec(def.Velocity)

		// Default scale to 1 if zero
		if def.Scale != [3]float32{} {
			e.Transform.Scale = vec(def.Scale)
		}

		b := built{entity: e}
		for i := range def.Components {
			c, err := loadComponent(e, &def.Components[i])
			if err != nil {
				return fmt.Errorf("object %q: %w", def.Name, err)
			}
			if c != nil {
				b.colliders = append(b.colliders, c)
			}
		}
		all = append(all, b)
	}

	for _, b := range all {
		w.AddEntity(b.entity)
		for _, c := range b.colliders {
			if err := w.AddCollider(c); err != nil {
				return fmt.Errorf("object %q: %w", b.entity.Name, err)
			}
		}
	}
	return nil
}

// loadComponent attaches the component described by node to e. Collider
// components are returned for registration with the world instead.
func loadComponent(e *engine.Entity, node *yaml.Node) (*physics.Collider, error) {
	var header componentHeader
	if err := node.Decode(&header); err != nil {
		return nil, err
	}

	switch header.Type {
	case "BoxCollider":
		var def boxColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		box, err := physics.NewAABB(
			rl.Vector3Subtract(vec(def.Offset), rl.Vector3Scale(vec(def.Size), 0.5)),
			rl.Vector3Add(vec(def.Offset), rl.Vector3Scale(vec(def.Size), 0.5)),
		)
		if err != nil {
			return nil, err
		}
		return physics.NewAABBCollider(e, box), nil

	case "SphereCollider":
		var def sphereColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		s, err := physics.NewSphere(vec(def.Offset), def.Radius)
		if err != nil {
			return nil, err
		}
		return physics.NewSphereCollider(e, s), nil

	case "PlaneCollider":
		var def planeColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		p, err := physics.NewPlane(vec(def.Normal), def.Distance)
		if err != nil {
			return nil, err
		}
		return physics.NewPlaneCollider(e, p), nil

	case "Mass":
		var def massDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		if !(def.Value > 0) {
			return nil, fmt.Errorf("%w: mass %v", physics.ErrInvalidMass, def.Value)
		}
		e.AddComponent(engine.Mass{Value: def.Value})

	case "Attractor":
		e.AddComponent(engine.Attractor{})

	case "Force":
		var def forceDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		f, err := engine.NewForce(vec(def.Direction), def.Strength)
		if err != nil {
			return nil, err
		}
		if err := e.AddForce(f); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownComponent, header.Type)
	}
	return nil, nil
}

// --- Saving ---

// Capture describes the current state of w. Static colliders without an
// owner are not part of any object and are skipped.
func Capture(w *physics.World) (*SceneFile, error) {
	byOwner := make(map[*engine.Entity][]*physics.Collider)
	for _, c := range w.Colliders() {
		if c.Owner() != nil {
			byOwner[c.Owner()] = append(byOwner[c.Owner()], c)
		}
	}

	sf := &SceneFile{}
	var err error
	w.Mutate(func(scene *engine.Scene) {
		sf.Name = scene.Name
		for _, e := range scene.Entities {
			def := ObjectDef{
				Name:     e.Name,
				Tags:     e.Tags,
				Position: arr(e.Transform.Position),
				Rotation: arr(e.Transform.Rotation),
				Scale:    arr(e.Transform.Scale),
				Velocity: arr(e.Velocity),
			}
			var defs []any
			for _, c := range byOwner[e] {
				defs = append(defs, colliderDef(c))
			}
			for _, comp := range e.Components() {
				switch comp := comp.(type) {
				case engine.Mass:
					defs = append(defs, massDef{Type: "Mass", Value: comp.Value})
				case engine.Attractor:
					defs = append(defs, attractorDef{Type: "Attractor"})
				}
			}
			for _, f := range e.Forces() {
				defs = append(defs, forceDef{Type: "Force", Direction: arr(f.Direction), Strength: f.Strength})
			}
			for _, d := range defs {
				var node yaml.Node
				if encErr := node.Encode(d); encErr != nil {
					err = encErr
					return
				}
				def.Components = append(def.Components, node)
			}
			sf.Objects = append(sf.Objects, def)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("capture scene: %w", err)
	}
	return sf, nil
}

func colliderDef(c *physics.Collider) any {
	if box, ok := c.AABB(); ok {
		return boxColliderDef{
			Type:   "BoxCollider",
			Size:   arr(rl.Vector3Subtract(box.Max, box.Min)),
			Offset: arr(box.Center()),
		}
	}
	if s, ok := c.Sphere(); ok {
		return sphereColliderDef{Type: "SphereCollider", Radius: s.Radius, Offset: arr(s.Center)}
	}
	p, _ := c.Plane()
	return planeColliderDef{Type: "PlaneCollider", Normal: arr(p.Normal), Distance: p.Distance}
}

func (sf *SceneFile) Save(path string) error {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
