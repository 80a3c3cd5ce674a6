package physics

import (
	"kinetic3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is an intersecting collider pair found during a tick.
type Contact struct {
	A, B *Collider
	Data IntersectData
}

// contactKey is ordered by registration order, which the sweep preserves.
type contactKey struct {
	a, b *Collider
}

// resolve pushes the pair apart along the contact normal, splitting the push
// by mass, then applies a restitution impulse if they are approaching.
func (w *World) resolve(c Contact) {
	depth := c.Data.Depth()
	normal := c.Data.Normal // from A toward B
	if depth == 0 || (normal == rl.Vector3{}) {
		return
	}

	a, b := c.A.owner, c.B.owner
	invA := inverseMass(a)
	invB := inverseMass(b)
	total := invA + invB
	if total == 0 {
		return
	}

	// Split the push based on mass ratio
	if invA > 0 {
		a.Transform.Position = rl.Vector3Subtract(a.Transform.Position, rl.Vector3Scale(normal, depth*invA/total))
	}
	if invB > 0 {
		b.Transform.Position = rl.Vector3Add(b.Transform.Position, rl.Vector3Scale(normal, depth*invB/total))
	}

	var velA, velB rl.Vector3
	if a != nil {
		velA = a.Velocity
	}
	if b != nil {
		velB = b.Velocity
	}
	velAlongNormal := rl.Vector3DotProduct(rl.Vector3Subtract(velB, velA), normal)

	// Only resolve if objects are moving toward each other
	if velAlongNormal >= 0 {
		return
	}

	j := -(1 + w.opts.Restitution) * velAlongNormal / total
	impulse := rl.Vector3Scale(normal, j)
	if invA > 0 {
		a.Velocity = rl.Vector3Subtract(a.Velocity, rl.Vector3Scale(impulse, invA))
	}
	if invB > 0 {
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(impulse, invB))
	}
}

// inverseMass is zero for static geometry and massless entities.
func inverseMass(e *engine.Entity) float32 {
	if e == nil {
		return 0
	}
	mass, err := MassOf(e)
	if err != nil {
		return 0
	}
	return 1 / mass
}

// trackContacts diffs this tick's contacts against the previous tick's.
func (w *World) trackContacts(contacts []Contact) (entered, exited []Contact) {
	current := make(map[contactKey]Contact, len(contacts))
	for _, c := range contacts {
		key := contactKey{a: c.A, b: c.B}
		current[key] = c
		if _, ok := w.activeContacts[key]; !ok {
			entered = append(entered, c)
		}
	}

	for key, c := range w.activeContacts {
		if _, ok := current[key]; !ok {
			exited = append(exited, c)
		}
	}

	// Swap buffers
	w.activeContacts = current
	return entered, exited
}
