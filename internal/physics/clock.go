package physics

import (
	"context"
	"sync"
	"time"
)

// Clock provides the current time to the scheduler.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for about d. It returns ctx.Err() when cancelled and may
// return other errors for interrupted waits.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// WallClock provides the real system time with monotonic clock readings
type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now()
}

// TimerSleeper sleeps on a runtime timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManualClock is a controllable time source. Its Sleep advances time instantly,
// which makes scheduler runs deterministic in tests and simulations.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance advances the current time by the given duration
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

func (m *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Advance(d)
	return nil
}
