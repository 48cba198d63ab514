package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler drives the session's fixed-rate ticks.
// Stop halts future ticks; a tick already running completes.
type Scheduler interface {
	Start(tick func())
	Stop()
	Running() bool
}

// Clock reports the current time. The session measures the fire cooldown with it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// StepScheduler runs a tick each time its owner calls Step.
// Frontends that already own a frame loop use it to keep ticks on that loop.
type StepScheduler struct {
	tick    func()
	running bool
}

var _ Scheduler = (*StepScheduler)(nil)

// NewStepScheduler creates a stopped step scheduler.
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

func (s *StepScheduler) Start(tick func()) {
	s.tick = tick
	s.running = true
}

func (s *StepScheduler) Stop() {
	s.running = false
}

func (s *StepScheduler) Running() bool {
	return s.running
}

// Step runs one tick if the scheduler is running. Returns whether it did.
func (s *StepScheduler) Step() bool {
	if !s.running || s.tick == nil {
		return false
	}
	s.tick()
	return true
}

// TickerScheduler runs ticks at a fixed interval on the goroutine that calls Run.
// Work from other goroutines is handed to that goroutine with Post, so it never
// interleaves with a tick.
type TickerScheduler struct {
	interval time.Duration
	posts    chan func()
	done     chan struct{}
	running  atomic.Bool

	mu   sync.Mutex
	tick func()
}

var _ Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler creates a scheduler ticking every interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{
		interval: interval,
		posts:    make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

func (s *TickerScheduler) Start(tick func()) {
	s.mu.Lock()
	s.tick = tick
	s.mu.Unlock()
	s.running.Store(true)
}

func (s *TickerScheduler) Stop() {
	s.running.Store(false)
}

func (s *TickerScheduler) Running() bool {
	return s.running.Load()
}

// Post queues fn to run on the scheduler goroutine. Returns false once Run has exited.
func (s *TickerScheduler) Post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.posts <- fn:
		return true
	case <-s.done:
		return false
	}
}

// Run processes ticks and posted work until ctx is cancelled.
func (s *TickerScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.running.Store(false)
			return
		case fn := <-s.posts:
			fn()
		case <-ticker.C:
			if !s.running.Load() {
				continue
			}
			s.mu.Lock()
			tick := s.tick
			s.mu.Unlock()
			if tick != nil {
				tick()
			}
		}
	}
}
