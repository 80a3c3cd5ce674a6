package physics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultTickRate = 30
	DefaultWaitStep = time.Millisecond
)

var (
	ErrAlreadyRunning = errors.New("physics: scheduler already running")
	ErrInvalidRate    = errors.New("physics: tick rate must be positive and at most one tick per nanosecond")
)

// Ticker is advanced by the scheduler once per fixed step.
type Ticker interface {
	Tick(dt float32)
}

type State uint32

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

type SchedulerOptions struct {
	Rate     int           // ticks per second
	WaitStep time.Duration // granularity of the wait between ticks
	Clock    Clock
	Sleeper  Sleeper
	Logger   *log.Logger
}

// Scheduler drives a Ticker at a fixed rate on its own goroutine,
// independent of the render frame rate.
type Scheduler struct {
	ticker   Ticker
	interval time.Duration
	step     time.Duration
	clock    Clock
	sleeper  Sleeper
	logger   *log.Logger

	state atomic.Uint32
	ticks atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(ticker Ticker, opts SchedulerOptions) (*Scheduler, error) {
	if opts.Rate == 0 {
		opts.Rate = DefaultTickRate
	}
	if opts.Rate < 0 || time.Second/time.Duration(opts.Rate) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, opts.Rate)
	}
	if opts.WaitStep <= 0 {
		opts.WaitStep = DefaultWaitStep
	}
	if opts.Clock == nil {
		opts.Clock = WallClock{}
	}
	if opts.Sleeper == nil {
		opts.Sleeper = TimerSleeper{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Scheduler{
		ticker:   ticker,
		interval: time.Second / time.Duration(opts.Rate),
		step:     opts.WaitStep,
		clock:    opts.Clock,
		sleeper:  opts.Sleeper,
		logger:   opts.Logger,
	}, nil
}

// Interval is the fixed step between ticks.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Run executes the fixed-rate loop until ctx is cancelled. Cancellation is
// checked before every tick and between wait steps; a tick that has begun
// always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.state.CompareAndSwap(uint32(StateStopped), uint32(StateRunning)) {
		return ErrAlreadyRunning
	}
	defer s.state.Store(uint32(StateStopped))

	s.logger.Info("Physics: scheduler started", "interval", s.interval)
	defer s.logger.Info("Physics: scheduler stopped", "ticks", s.ticks.Load())

	dt := float32(s.interval.Seconds())
	deadline := s.clock.Now().Add(s.interval)
	for {
		if err := s.wait(ctx, deadline); err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		s.ticker.Tick(dt)
		s.ticks.Add(1)

		// Advance by exactly one interval to avoid drift; resync if far behind.
		deadline = deadline.Add(s.interval)
		if now := s.clock.Now(); now.Sub(deadline) > 2*s.interval {
			s.logger.Warn("Physics: falling behind, resyncing", "behind", now.Sub(deadline))
			deadline = now.Add(s.interval)
		}
	}
}

// wait sleeps in small steps until deadline. Only ctx ends the wait early;
// other sleep errors are logged and the wait resumes.
func (s *Scheduler) wait(ctx context.Context, deadline time.Time) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := deadline.Sub(s.clock.Now())
		if remaining <= 0 {
			return nil
		}
		if err := s.sleeper.Sleep(ctx, min(s.step, remaining)); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("Physics: wait interrupted", "err", err)
		}
	}
}

// Start runs the loop on a new goroutine. It is cancelled by Stop or by parent.
func (s *Scheduler) Start(parent context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go func() {
		defer close(done)
		if err := s.Run(ctx); err != nil {
			s.logger.Error("Physics: scheduler exited", "err", err)
		}
	}()
	return nil
}

// Stop cancels a loop started with Start and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
