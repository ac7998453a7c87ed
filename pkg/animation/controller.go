package animation

import (
	"fmt"
	"time"
)

// AnimationStatus represents the current state of an animation.
//
// The status follows this state machine:
//
//	          AnimateTo()                 end reached
//	Idle ───────────────► Forward/Reverse ───────────► Completed
//	  ▲                          │
//	  │          Stop()          │
//	  └──────────────────────────┘
//
// Forward means the target is above the start value, Reverse below.
type AnimationStatus int

const (
	// AnimationIdle means no transition is running and the last one (if any)
	// was stopped before reaching its target.
	AnimationIdle AnimationStatus = iota
	// AnimationForward means a transition toward a larger value is running.
	AnimationForward
	// AnimationReverse means a transition toward a smaller value is running.
	AnimationReverse
	// AnimationCompleted means the last transition reached its target.
	AnimationCompleted
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController drives one animated scalar.
//
// AnimateTo starts a timed transition from the current Value to a target over
// Duration, shaped by Curve. At most one transition is in flight: starting a
// new one stops the previous one first. The completion continuation passed to
// AnimateTo runs exactly once, inside the Scheduler.Step that reaches the
// target. Stop halts the transition where it is and drops the continuation.
//
// Always call Dispose when done to stop the animation and release listeners.
type AnimationController struct {
	// Value is the current animated value.
	Value float64

	// Duration is the length of a transition.
	Duration time.Duration

	// Curve transforms linear progress (optional).
	Curve func(float64) float64

	scheduler       *Scheduler
	status          AnimationStatus
	ticker          *Ticker
	target          float64
	startValue      float64
	onComplete      func()
	listeners       map[int]func()
	statusListeners map[int]func(AnimationStatus)
	nextListenerID  int
}

// NewAnimationController creates a controller resting at initial, driven by
// scheduler.
func NewAnimationController(scheduler *Scheduler, initial float64) *AnimationController {
	return &AnimationController{
		Value:           initial,
		Curve:           LinearCurve,
		scheduler:       scheduler,
		status:          AnimationIdle,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(AnimationStatus)),
	}
}

// AnimateTo animates from the current value to target and calls onComplete
// (which may be nil) when the target is reached. Any in-flight transition is
// stopped without running its continuation.
func (c *AnimationController) AnimateTo(target float64, onComplete func()) {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}

	c.target = target
	c.startValue = c.Value
	c.onComplete = onComplete
	if target >= c.Value {
		c.setStatus(AnimationForward)
	} else {
		c.setStatus(AnimationReverse)
	}

	c.ticker = c.scheduler.NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	if c.Duration <= 0 {
		c.Value = c.target
		c.notifyListeners()
		c.finish()
		return
	}

	// Calculate progress as fraction of duration
	progress := float64(elapsed) / float64(c.Duration)
	if progress >= 1.0 {
		progress = 1.0
	}

	if progress >= 1.0 {
		// Land exactly on the target regardless of the curve's end value.
		c.Value = c.target
	} else {
		eased := progress
		if c.Curve != nil {
			eased = c.Curve(progress)
		}
		c.Value = c.startValue + (c.target-c.startValue)*eased
	}
	c.notifyListeners()

	if progress >= 1.0 {
		c.finish()
	}
}

// finish ends the running transition and hands control to its continuation.
// The continuation is cleared before it runs so it may start a new transition.
func (c *AnimationController) finish() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.setStatus(AnimationCompleted)
	done := c.onComplete
	c.onComplete = nil
	if done != nil {
		done()
	}
}

// Stop stops the animation at the current value. The pending continuation is
// discarded.
func (c *AnimationController) Stop() {
	c.onComplete = nil
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.setStatus(AnimationIdle)
}

// SetValue writes the value directly and notifies listeners. It does not stop
// a running transition; callers that take over the value must Stop first.
func (c *AnimationController) SetValue(value float64) {
	c.Value = value
	c.notifyListeners()
}

// Target returns the target of the current or last transition.
func (c *AnimationController) Target() float64 {
	return c.target
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating returns true if a transition is currently running.
func (c *AnimationController) IsAnimating() bool {
	return c.status == AnimationForward || c.status == AnimationReverse
}

// IsCompleted returns true if the last transition reached its target.
func (c *AnimationController) IsCompleted() bool {
	return c.status == AnimationCompleted
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *AnimationController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose cleans up resources used by the controller.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.listeners = make(map[int]func())
	c.statusListeners = make(map[int]func(AnimationStatus))
}
