// Package animation provides the timing primitives behind the modal's two
// animated quantities.
//
// # Core Components
//
//   - [Scheduler]: the frame loop. The host calls Step once per frame; every
//     active [Ticker] is advanced with the time elapsed since it started.
//
//   - [AnimationController]: drives a single scalar toward a target value over
//     a duration, shaped by an easing curve. Starting a new transition stops
//     the previous one. A transition that runs to the end invokes its
//     completion continuation exactly once; a stopped one never does.
//
//   - Curves: easing functions such as [EaseOut], [CubicBezier] and [Elastic].
//
//   - [Tween]: maps a controller's value onto another range.
//
// # Basic Usage
//
//	sched := animation.NewScheduler(animation.SystemClock)
//	c := animation.NewAnimationController(sched, 0)
//	c.Duration = 300 * time.Millisecond
//	c.Curve = animation.EaseOut
//	c.AnimateTo(600, func() { fmt.Println("settled") })
//
//	// In the host frame loop:
//	sched.Step()
package animation

import (
	"sync"
	"time"
)

// Scheduler owns the set of active tickers and advances them on each frame.
//
// The host drives the scheduler by calling Step once per frame (a display
// link, a terminal tick message, a test loop). Ticker callbacks only ever run
// inside Step.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	tickers map[*Ticker]struct{}
}

// NewScheduler creates a scheduler reading time from clock.
// A nil clock falls back to SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{
		clock:   clock,
		tickers: make(map[*Ticker]struct{}),
	}
}

// Now returns the current time from the scheduler's clock.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// NewTicker creates a new ticker bound to this scheduler.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		scheduler: s,
		callback:  callback,
	}
}

// Step advances all active tickers.
// This should be called once per frame from the host.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.tickers) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks can start or stop tickers.
	tickers := make([]*Ticker, 0, len(s.tickers))
	for ticker := range s.tickers {
		tickers = append(tickers, ticker)
	}
	s.mu.Unlock()

	now := s.clock.Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func (s *Scheduler) HasActiveTickers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickers) > 0
}

func (s *Scheduler) add(t *Ticker) {
	s.mu.Lock()
	s.tickers[t] = struct{}{}
	s.mu.Unlock()
}

func (s *Scheduler) remove(t *Ticker) {
	s.mu.Lock()
	delete(s.tickers, t)
	s.mu.Unlock()
}

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [AnimationController].
// Most code should use AnimationController directly rather than Ticker.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	scheduler *Scheduler
	callback  func(elapsed time.Duration)
	isActive  bool
	start     time.Time
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.add(t)
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.remove(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.scheduler.Now().Sub(t.start)
}
