package modal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-drift/modalbox/pkg/animation"
)

// Quantity names one of the two animated scalars a modal owns.
type Quantity int

const (
	// QuantityPosition is the vertical offset of the modal.
	QuantityPosition Quantity = iota
	// QuantityBackdrop is the backdrop progress in [0, 1].
	QuantityBackdrop

	quantityCount = 2
)

func (q Quantity) String() string {
	switch q {
	case QuantityPosition:
		return "position"
	case QuantityBackdrop:
		return "backdrop"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// Transition is a handle to one timed transition started by an Animator.
type Transition struct {
	animator *Animator
	quantity Quantity
	id       uint64
}

// Cancel stops the transition without running its continuation. A handle
// to a transition that has completed or been superseded does nothing.
func (t *Transition) Cancel() {
	if t.Active() {
		t.animator.Cancel(t.quantity)
	}
}

// Active reports whether this is still the in-flight transition of its
// quantity.
func (t *Transition) Active() bool {
	return t != nil && t.id != 0 && t.animator.current[t.quantity] == t.id
}

// Quantity returns the quantity the transition drives.
func (t *Transition) Quantity() Quantity {
	return t.quantity
}

// Animator owns the position and backdrop controllers and guarantees at
// most one in-flight transition per quantity. The two quantities are
// independent and may finish in either order.
type Animator struct {
	controllers [quantityCount]*animation.AnimationController
	current     [quantityCount]uint64
	seq         uint64
	log         *slog.Logger
}

// NewAnimator creates an animator whose transitions last duration and are
// shaped by curve. Both quantities start at zero.
func NewAnimator(scheduler *animation.Scheduler, duration time.Duration, curve func(float64) float64) *Animator {
	a := &Animator{log: slog.New(slog.DiscardHandler)}
	if curve == nil {
		curve = animation.LinearCurve
	}
	for q := range a.controllers {
		c := animation.NewAnimationController(scheduler, 0)
		c.Duration = duration
		c.Curve = curve
		a.controllers[q] = c
	}
	return a
}

// AnimateTo starts a transition of q toward target, stopping any transition
// of q already in flight. onDone, which may be nil, runs once inside the
// scheduler step that reaches the target; it never runs if the transition is
// cancelled or superseded.
func (a *Animator) AnimateTo(q Quantity, target float64, onDone func()) *Transition {
	c := a.controllers[q]
	if a.current[q] != 0 {
		a.log.Debug("transition superseded", "quantity", q.String(), "from", c.Value, "target", target)
	}
	a.seq++
	id := a.seq
	a.current[q] = id
	c.AnimateTo(target, func() {
		if a.current[q] == id {
			a.current[q] = 0
		}
		if onDone != nil {
			onDone()
		}
	})
	return &Transition{animator: a, quantity: q, id: id}
}

// Cancel stops the in-flight transition of q, if any, where it is.
func (a *Animator) Cancel(q Quantity) {
	a.current[q] = 0
	a.controllers[q].Stop()
}

// Animating reports whether q has a transition in flight.
func (a *Animator) Animating(q Quantity) bool {
	return a.current[q] != 0
}

// Value returns the current value of q.
func (a *Animator) Value(q Quantity) float64 {
	return a.controllers[q].Value
}

// SetValue cancels any transition of q and writes value directly.
func (a *Animator) SetValue(q Quantity, value float64) {
	a.Cancel(q)
	a.controllers[q].SetValue(value)
}

// Controller exposes the controller behind q so hosts can add listeners.
func (a *Animator) Controller(q Quantity) *animation.AnimationController {
	return a.controllers[q]
}

// Dispose stops both quantities and drops their listeners.
func (a *Animator) Dispose() {
	for q, c := range a.controllers {
		a.current[q] = 0
		c.Dispose()
	}
}
