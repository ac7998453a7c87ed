// Package modal implements the open/close orchestration of a slide-in modal
// overlay.
//
// A Modal owns two animated scalars, the vertical position of the overlay
// and the progress of its dimming backdrop, and drives them through the
// states Closed, Opening, Open and Closing in response to programmatic
// requests, a swipe-to-close pan gesture, layout measurements and the
// on-screen keyboard. Hosts bind Frame values to their own transform and
// opacity and mount the overlay while Visible reports true.
//
// A Modal is not safe for concurrent use. Every method, and the
// animation.Scheduler driving it, must run on the host's event loop.
//
//	sched := animation.NewScheduler(nil)
//	opts := modal.DefaultOptions()
//	opts.Anchor = modal.AnchorBottom
//	m, err := modal.New(sched, opts)
//	if err != nil {
//		return err
//	}
//	m.OnContainerMeasured(modal.Size{Width: 390, Height: 844})
//	m.OnContentMeasured(modal.Size{Width: 390, Height: 300})
//	m.Open()
//	// once per frame:
//	sched.Step()
//	draw(m.Frame())
package modal

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/modalbox/pkg/animation"
	"github.com/go-drift/modalbox/pkg/errors"
)

// State is the logical state of a modal.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Driver identifies who may write the position scalar.
type Driver int

const (
	// DriverIdle means nothing is moving the position.
	DriverIdle Driver = iota
	// DriverTimed means a timed transition owns the position.
	DriverTimed
	// DriverGesture means a swipe session owns the position.
	DriverGesture
)

func (d Driver) String() string {
	switch d {
	case DriverIdle:
		return "idle"
	case DriverTimed:
		return "timed"
	case DriverGesture:
		return "gesture"
	default:
		return fmt.Sprintf("Driver(%d)", int(d))
	}
}

// Frame is a snapshot of the values a host renders.
type Frame struct {
	// Position is the vertical offset of the overlay.
	Position float64
	// Backdrop is the effective backdrop opacity, zero when the backdrop is
	// disabled.
	Backdrop float64
	// OffsetX centers the overlay horizontally in its container.
	OffsetX float64
}

// Modal is the state machine behind one overlay.
type Modal struct {
	opts     Options
	entry    Entry
	log      *slog.Logger
	animator *Animator
	layout   *LayoutTracker
	keyboard *KeyboardCoordinator
	gesture  *GestureRecognizer
	backdrop *animation.Tween[float64]

	state        State
	driver       Driver
	disabled     bool
	disposed     bool
	deferredOpen bool
	openNotified bool
	startPlaced  bool
	visible      bool
	declared     bool
	declaredSet  bool

	removeBack     func()
	unsubscribe    []func()
	frameListeners map[int]func(Frame)
	nextListenerID int
}

// New creates a modal driven by scheduler. opts is validated once and
// copied; later changes to the caller's Options have no effect.
func New(scheduler *animation.Scheduler, opts Options) (*Modal, error) {
	if scheduler == nil {
		return nil, &errors.ModalError{
			Op:   "modal.New",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("scheduler is required"),
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := &Modal{
		opts:           opts,
		entry:          opts.Entry.Resolve(opts.Anchor),
		log:            opts.logger(),
		layout:         NewLayoutTracker(opts.ScreenSize),
		backdrop:       animation.TweenFloat64(0, opts.BackdropOpacity),
		disabled:       opts.Disabled,
		frameListeners: make(map[int]func(Frame)),
	}
	m.animator = NewAnimator(scheduler, opts.AnimationDuration, opts.Easing)
	m.animator.log = m.log
	m.gesture = &GestureRecognizer{m: m}
	m.keyboard = NewKeyboardCoordinator(
		func() bool { return m.state == StateOpen },
		func() float64 { return m.layout.Container().Height },
		func() { m.dispatch(reqReposition) },
	)

	if opts.StartOpen {
		m.state = StateOpen
		m.openNotified = true
		m.startPlaced = true
		m.apply(effect{kind: effectPlacePosition, target: m.RestingPosition()})
		if opts.Backdrop {
			m.apply(effect{kind: effectPlaceBackdrop, target: 1})
		}
		if opts.BackButtonClose {
			m.apply(effect{kind: effectAddBackHandler})
		}
	} else {
		m.apply(effect{kind: effectPlacePosition, target: m.closedPosition()})
	}

	for q := range quantityCount {
		m.unsubscribe = append(m.unsubscribe, m.animator.Controller(Quantity(q)).AddListener(m.emitFrame))
	}
	if opts.Keyboard != nil {
		m.unsubscribe = append(m.unsubscribe, opts.Keyboard.Subscribe(m.keyboard.OnFrameChange, m.keyboard.OnHide))
	}
	m.syncVisibility()

	m.log.Debug("modal created",
		"anchor", opts.Anchor.String(),
		"entry", m.entry.String(),
		"state", m.state.String(),
	)
	return m, nil
}

// Open starts opening the modal. It does nothing while disabled, opening or
// open. Before the first layout measurement the animation is deferred until
// the measurement arrives.
func (m *Modal) Open() {
	m.dispatch(reqOpen)
}

// Close starts closing the modal. It does nothing while disabled or unless
// the modal is open or opening.
func (m *Modal) Close() {
	m.dispatch(reqClose)
}

// SetOpen drives the modal declaratively. It acts only when open differs
// from the previously declared value; the first call always acts.
func (m *Modal) SetOpen(open bool) {
	if m.declaredSet && m.declared == open {
		return
	}
	m.declared, m.declaredSet = open, true
	if open {
		m.Open()
	} else {
		m.Close()
	}
}

// SetDisabled toggles whether the modal responds to open, close and swipe
// requests.
func (m *Modal) SetDisabled(disabled bool) {
	m.disabled = disabled
}

// Disabled reports whether the modal ignores requests.
func (m *Modal) Disabled() bool {
	return m.disabled
}

// TapBackdrop closes the modal if BackdropPressToClose is set.
func (m *Modal) TapBackdrop() {
	if m.opts.BackdropPressToClose {
		m.Close()
	}
}

// HostRequestedClose handles a dismissal request from the presentation
// surface. It closes the modal if BackButtonClose is set.
func (m *Modal) HostRequestedClose() {
	if m.opts.BackButtonClose {
		m.Close()
	}
}

func (m *Modal) onBackPress() bool {
	m.Close()
	return true
}

// OnContentMeasured records the overlay's own measured size.
func (m *Modal) OnContentMeasured(size Size) {
	if m.disposed {
		return
	}
	m.onLayoutChange(m.layout.OnContentMeasured(size))
}

// OnContainerMeasured records the size available to the overlay.
func (m *Modal) OnContainerMeasured(size Size) {
	if m.disposed {
		return
	}
	change := m.layout.OnContainerMeasured(size)
	if change.Changed() && m.opts.OnLayout != nil {
		m.opts.OnLayout(size)
	}
	m.onLayoutChange(change)
}

func (m *Modal) onLayoutChange(change LayoutChange) {
	switch {
	case change.Initial:
		m.dispatch(reqLayoutReady)
	case change.HeightChanged:
		m.dispatch(reqReposition)
	}
	if change.WidthChanged {
		m.emitFrame()
	}
}

// RestingPosition returns where the modal rests when open, given the
// current layout and keyboard.
func (m *Modal) RestingPosition() float64 {
	return KeyboardRestingPosition(
		m.opts.Anchor,
		m.layout.Content(),
		m.layout.Container().Height,
		m.keyboard.Offset(),
		m.opts.KeyboardTopOffset,
	)
}

func (m *Modal) closedPosition() float64 {
	return ClosedPosition(m.entry, m.layout.Container().Height)
}

// State returns the logical state.
func (m *Modal) State() State { return m.state }

// Driver returns who currently owns the position scalar.
func (m *Modal) Driver() Driver { return m.driver }

// Visible reports whether the host should mount the overlay.
func (m *Modal) Visible() bool { return m.state != StateClosed }

// IsModal marks the overlay as a modal surface for accessibility.
func (m *Modal) IsModal() bool { return true }

// Options returns a copy of the options the modal was created with.
func (m *Modal) Options() Options { return m.opts }

// Gesture returns the swipe-to-close recognizer.
func (m *Modal) Gesture() *GestureRecognizer { return m.gesture }

// Keyboard returns the keyboard coordinator. Hosts without a
// KeyboardNotifier can feed it directly.
func (m *Modal) Keyboard() *KeyboardCoordinator { return m.keyboard }

// Animator returns the animator owning the position and backdrop scalars.
func (m *Modal) Animator() *Animator { return m.animator }

// Frame returns the current render values.
func (m *Modal) Frame() Frame {
	f := Frame{
		Position: m.animator.Value(QuantityPosition),
		OffsetX:  m.layout.OffsetX(),
	}
	if m.opts.Backdrop {
		f.Backdrop = m.backdrop.Transform(m.animator.Controller(QuantityBackdrop))
	}
	return f
}

// AddFrameListener registers fn to be called whenever a Frame value
// changes. Returns an unsubscribe function.
func (m *Modal) AddFrameListener(fn func(Frame)) func() {
	id := m.nextListenerID
	m.nextListenerID++
	m.frameListeners[id] = fn
	return func() {
		delete(m.frameListeners, id)
	}
}

func (m *Modal) emitFrame() {
	if len(m.frameListeners) == 0 {
		return
	}
	f := m.Frame()
	for _, fn := range m.frameListeners {
		fn(f)
	}
}

func (m *Modal) syncVisibility() {
	visible := m.Visible()
	if visible == m.visible {
		return
	}
	m.visible = visible
	if m.opts.CoverScreen && m.opts.Host != nil {
		if visible {
			m.opts.Host.Show(m.HostRequestedClose)
		} else {
			m.opts.Host.Hide()
		}
	}
	if m.opts.OnVisibilityChanged != nil {
		m.opts.OnVisibilityChanged(visible)
	}
}

// Dispose stops both transitions and releases every subscription. The
// modal ignores all further input.
func (m *Modal) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.gesture.reset()
	m.apply(effect{kind: effectRemoveBackHandler})
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
	m.animator.Dispose()
	if m.visible && m.opts.CoverScreen && m.opts.Host != nil {
		m.opts.Host.Hide()
	}
	m.frameListeners = make(map[int]func(Frame))
}
