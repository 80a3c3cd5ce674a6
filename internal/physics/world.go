package physics

import (
	"errors"
	"sync"
	"sync/atomic"

	"kinetic3d/internal/engine"
	"kinetic3d/internal/vmath"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrForeignOwner is returned when a collider's owner is not part of the world's scene.
var ErrForeignOwner = errors.New("physics: collider owner is not in the scene")

type WorldOptions struct {
	Gravity               rl.Vector3
	Mode                  IntegrationMode
	GravitationalConstant float32 // attraction between Attractor entities; 0 disables
	ResolveContacts       bool
	Restitution           float32 // 0 = no bounce, 1 = perfect bounce
	Logger                *log.Logger
}

// World steps a scene at a fixed rate. All entity mutation happens under mu:
// Tick holds it for the whole sweep/resolve/integrate pass, and other
// goroutines go through Mutate, AddEntity, AddCollider and friends.
// Renderers read the published Snapshot instead of the entities.
type World struct {
	mu         sync.Mutex
	scene      *engine.Scene
	colliders  []*Collider
	integrator Integrator
	opts       WorldOptions
	logger     *log.Logger
	tick       uint64

	// Collision tracking for callbacks
	activeContacts map[contactKey]Contact // contacts from last tick

	snapshot atomic.Pointer[Snapshot]

	// Fired on the ticking goroutine after the world lock is released.
	OnCollisionEnter engine.EventWithArg[Contact]
	OnCollisionExit  engine.EventWithArg[Contact]
}

func NewWorld(scene *engine.Scene, opts WorldOptions) *World {
	if scene == nil {
		scene = engine.NewScene("Main")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	w := &World{
		scene:          scene,
		colliders:      make([]*Collider, 0),
		integrator:     Integrator{Mode: opts.Mode, Gravity: opts.Gravity},
		opts:           opts,
		logger:         logger,
		activeContacts: make(map[contactKey]Contact),
	}
	w.snapshot.Store(&Snapshot{})
	return w
}

func (w *World) AddEntity(e *engine.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scene.AddEntity(e)
}

// RemoveEntity removes e and every collider it owns.
func (w *World) RemoveEntity(e *engine.Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.scene.RemoveEntity(e) {
		return false
	}
	kept := w.colliders[:0]
	for _, c := range w.colliders {
		if c.owner != e {
			kept = append(kept, c)
		}
	}
	clear(w.colliders[len(kept):])
	w.colliders = kept
	return true
}

// AddCollider registers c. Its owner, if any, must already be in the scene.
func (w *World) AddCollider(c *Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if c.owner != nil && c.owner.Scene != w.scene {
		return ErrForeignOwner
	}
	w.colliders = append(w.colliders, c)
	return nil
}

func (w *World) RemoveCollider(c *Collider) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.colliders {
		if existing == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// Colliders returns a copy of the registered colliders in insertion order.
func (w *World) Colliders() []*Collider {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Collider, len(w.colliders))
	copy(out, w.colliders)
	return out
}

// Mutate runs fn with the world lock held, so fn may freely change entity
// state without racing a tick.
func (w *World) Mutate(fn func(scene *engine.Scene)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.scene)
}

// Snapshot returns the state published by the last completed tick.
func (w *World) Snapshot() *Snapshot {
	return w.snapshot.Load()
}

// Tick advances the simulation by dt seconds: collision sweep, contact
// resolution, force integration, snapshot publication, then callbacks.
func (w *World) Tick(dt float32) {
	if !(dt > 0) || !vmath.IsFiniteScalar(dt) {
		w.logger.Warn("Physics: tick skipped", "dt", dt)
		return
	}

	w.mu.Lock()
	contacts := w.sweep()
	if w.opts.ResolveContacts {
		for _, c := range contacts {
			w.resolve(c)
		}
	}
	w.integrate(dt)
	w.tick++
	entered, exited := w.trackContacts(contacts)
	w.publish(len(contacts))
	w.mu.Unlock()

	for _, c := range entered {
		w.OnCollisionEnter.Invoke(c)
	}
	for _, c := range exited {
		w.OnCollisionExit.Invoke(c)
	}
}

// sweep tests every collider pair. There is no broad phase: cost is O(n²).
// Pairs that can never move (both immovable) or share an owner are skipped.
func (w *World) sweep() []Contact {
	var contacts []Contact
	for i := 0; i < len(w.colliders); i++ {
		a := w.colliders[i]
		for j := i + 1; j < len(w.colliders); j++ {
			b := w.colliders[j]
			if a.owner != nil && a.owner == b.owner {
				continue
			}
			if !a.dynamic() && !b.dynamic() {
				continue
			}
			data, err := Intersect(a, b)
			if err != nil {
				w.logger.Error("Physics: intersection failed", "a", a.ownerName(), "b", b.ownerName(), "err", err)
				continue
			}
			if data.Intersecting {
				contacts = append(contacts, Contact{A: a, B: b, Data: data})
			}
		}
	}
	return contacts
}

func (w *World) integrate(dt float32) {
	var attractors []*engine.Entity
	if w.opts.GravitationalConstant > 0 {
		for _, e := range w.scene.Entities {
			if engine.Has[engine.Attractor](e) {
				attractors = append(attractors, e)
			}
		}
	}

	for _, e := range w.scene.Entities {
		if !engine.Has[engine.Mass](e) {
			continue // static
		}
		var pull rl.Vector3
		if engine.Has[engine.Attractor](e) {
			for _, other := range attractors {
				if other != e {
					pull = rl.Vector3Add(pull, AttractionOrZero(e, other, w.opts.GravitationalConstant, w.logger))
				}
			}
		}
		if err := w.integrator.Step(e, dt, pull); err != nil {
			var missing *engine.ComponentMissingError
			switch {
			case errors.As(err, &missing), errors.Is(err, ErrInvalidMass):
				w.logger.Warn("Physics: entity not integrated", "entity", e.Name, "err", err)
			case errors.Is(err, vmath.ErrDegenerateVector):
				w.logger.Debug("Physics: force skipped", "entity", e.Name, "err", err)
			default:
				w.logger.Error("Physics: integration failed", "entity", e.Name, "err", err)
			}
		}
	}
}

func (w *World) publish(contacts int) {
	snap := &Snapshot{
		Tick:     w.tick,
		Contacts: contacts,
		Bodies:   make([]BodyState, 0, len(w.scene.Entities)),
	}
	for _, e := range w.scene.Entities {
		snap.Bodies = append(snap.Bodies, BodyState{
			Name:     e.Name,
			Position: e.Transform.Position,
			Rotation: e.Transform.Rotation,
			Scale:    e.Transform.Scale,
			Velocity: e.Velocity,
		})
	}
	w.snapshot.Store(snap)
}
