package testing

import (
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Stepper advances a frame loop by one frame. animation.Scheduler
// implements it.
type Stepper interface {
	Step()
}

// Pump advances the clock by frame and steps s once.
func Pump(s Stepper, clk *FakeClock, frame time.Duration) {
	clk.Advance(frame)
	s.Step()
}

// PumpFrames pumps n frames of the given length.
func PumpFrames(s Stepper, clk *FakeClock, frame time.Duration, n int) {
	for range n {
		Pump(s, clk, frame)
	}
}

// PumpFor pumps frames until at least total time has elapsed.
// A non-positive frame length pumps a single step of total.
func PumpFor(s Stepper, clk *FakeClock, frame, total time.Duration) {
	if frame <= 0 {
		Pump(s, clk, total)
		return
	}
	for elapsed := time.Duration(0); elapsed < total; elapsed += frame {
		Pump(s, clk, frame)
	}
}
