package particles

import (
	"errors"
	"fmt"
	"sync"

	"kinetic3d/internal/vmath"

	"github.com/charmbracelet/log"
)

// DefaultGravity is the vertical acceleration applied to a particle with
// GravityScale 1.
const DefaultGravity = -50

var (
	ErrNilParticle     = errors.New("particles: nil particle")
	ErrExpired         = errors.New("particles: particle already expired")
	ErrInvalidLifespan = errors.New("particles: lifespan must be positive and finite")
	ErrFull            = errors.New("particles: manager is full")
	ErrAlreadyAdded    = errors.New("particles: particle already added")
)

type Options struct {
	Gravity  *float32 // nil means DefaultGravity
	Limit    int     // maximum live particles; 0 is unlimited
	OnExpire func(*Particle)
	Logger   *log.Logger
}

// Manager holds particle buckets. Add is safe to call from any goroutine,
// including from OnExpire or a physics collision handler while Update runs:
// such insertions are queued and applied once the pass completes.
type Manager struct {
	gravity  float32
	limit    int
	onExpire func(*Particle)
	logger   *log.Logger

	updateMu sync.Mutex // serializes Update passes

	inbox    sync.Mutex // guards updating and pending; taken before mu
	updating bool
	pending  []*Particle

	mu      sync.Mutex
	buckets map[Key][]*Particle
	keys    []Key // bucket creation order
	count   int
}

func NewManager(opts Options) *Manager {
	gravity := float32(DefaultGravity)
	if opts.Gravity != nil {
		gravity = *opts.Gravity
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Manager{
		gravity:  gravity,
		limit:    opts.Limit,
		onExpire: opts.OnExpire,
		logger:   opts.Logger,
		buckets:  make(map[Key][]*Particle),
	}
}

// Add inserts p at the end of its key's bucket, creating the bucket if needed.
// A particle belongs to at most one bucket slot for its whole life: adding it
// again while live or queued fails with ErrAlreadyAdded, and after it expires
// with ErrExpired.
func (m *Manager) Add(p *Particle) error {
	if p == nil {
		return ErrNilParticle
	}

	m.inbox.Lock()
	defer m.inbox.Unlock()
	switch p.state {
	case stateOwned:
		return ErrAlreadyAdded
	case stateRetired:
		return ErrExpired
	}
	if !(p.Lifespan > 0) || !vmath.IsFiniteScalar(p.Lifespan) {
		return fmt.Errorf("%w: %v", ErrInvalidLifespan, p.Lifespan)
	}

	if m.updating {
		p.state = stateOwned
		m.pending = append(m.pending, p)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.insert(p); err != nil {
		return err
	}
	p.state = stateOwned
	return nil
}

// insert requires mu.
func (m *Manager) insert(p *Particle) error {
	if m.limit > 0 && m.count >= m.limit {
		return ErrFull
	}
	bucket, ok := m.buckets[p.Key]
	if !ok {
		m.keys = append(m.keys, p.Key)
	}
	m.buckets[p.Key] = append(bucket, p)
	m.count++
	return nil
}

// Update advances every particle by frameTime seconds: gravity, then
// position, then age. Particles whose age reaches their lifespan are removed
// without disturbing the order of the rest, and emptied buckets are deleted.
// OnExpire runs after the pass; a non-positive or non-finite frameTime is ignored.
func (m *Manager) Update(frameTime float32) {
	if !(frameTime > 0) || !vmath.IsFiniteScalar(frameTime) {
		m.logger.Debug("Particles: update skipped", "frameTime", frameTime)
		return
	}

	m.updateMu.Lock()
	defer m.updateMu.Unlock()

	m.inbox.Lock()
	m.updating = true
	m.inbox.Unlock()

	m.mu.Lock()
	expired := m.step(frameTime)
	m.mu.Unlock()

	m.inbox.Lock()
	for _, p := range expired {
		p.state = stateRetired
	}
	m.inbox.Unlock()

	if m.onExpire != nil {
		for _, p := range expired {
			m.onExpire(p)
		}
	}

	m.inbox.Lock()
	defer m.inbox.Unlock()
	m.updating = false
	if len(m.pending) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pending {
		if err := m.insert(p); err != nil {
			p.state = stateFree
			m.logger.Warn("Particles: queued particle dropped", "key", p.Key, "err", err)
		}
	}
	clear(m.pending)
	m.pending = m.pending[:0]
}

// step requires mu.
func (m *Manager) step(dt float32) []*Particle {
	var expired []*Particle
	keys := m.keys[:0]
	for _, key := range m.keys {
		bucket := m.buckets[key]
		kept := bucket[:0]
		for _, p := range bucket {
			if p.advance(m.gravity, dt) {
				p.expired = true
				expired = append(expired, p)
				continue
			}
			kept = append(kept, p)
		}
		clear(bucket[len(kept):])

		if len(kept) == 0 {
			delete(m.buckets, key)
			continue
		}
		m.buckets[key] = kept
		keys = append(keys, key)
	}
	clear(m.keys[len(keys):])
	m.keys = keys
	m.count -= len(expired)
	return expired
}

// Batches returns a copy of every bucket's transforms in bucket creation order.
func (m *Manager) Batches() []Batch {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Batch, 0, len(m.keys))
	for _, key := range m.keys {
		bucket := m.buckets[key]
		batch := Batch{Key: key, Instances: make([]Instance, len(bucket))}
		for i, p := range bucket {
			batch.Instances[i] = Instance{Position: p.Position, Rotation: p.Rotation, Scale: p.Scale}
		}
		out = append(out, batch)
	}
	return out
}

// Len returns the number of live particles, not counting queued insertions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Keys returns the live bucket keys in creation order.
func (m *Manager) Keys() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Key, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Manager) BucketLen(key Key) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets[key])
}

// Clear drops every live particle without firing OnExpire. Dropped particles
// may be added again.
func (m *Manager) Clear() {
	m.inbox.Lock()
	defer m.inbox.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bucket := range m.buckets {
		for _, p := range bucket {
			p.state = stateFree
		}
	}
	clear(m.buckets)
	m.keys = m.keys[:0]
	m.count = 0
}
