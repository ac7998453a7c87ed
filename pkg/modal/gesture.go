package modal

// PanStart is where a pan gesture began, in container coordinates.
type PanStart struct {
	X, Y float64
}

type swipeSession struct {
	active               bool
	startedInCaptureArea bool
	closingIntent        bool
}

// GestureRecognizer implements swipe-to-close over a vertical pan.
//
// Displacements passed to OnMove, OnRelease and OnTerminate are measured
// from the gesture's start point, positive downward.
type GestureRecognizer struct {
	m       *Modal
	session swipeSession
}

// ShouldCapture decides whether a pan starting at start belongs to the
// swipe-to-close channel. Accepting takes the position away from any timed
// transition until the gesture ends. A second pan is rejected while a swipe
// is in progress and leaves that swipe untouched.
func (g *GestureRecognizer) ShouldCapture(start PanStart) bool {
	m := g.m
	if g.session.active {
		return false
	}
	if m.disposed || !m.opts.SwipeToClose || m.disabled {
		return false
	}
	if m.state == StateClosed || m.state == StateClosing {
		return false
	}
	// Nothing to drag until the first measurement starts the open.
	if m.deferredOpen || !m.layout.Initialized() {
		return false
	}
	if m.opts.SwipeArea > 0 && start.Y-m.RestingPosition() > m.opts.SwipeArea {
		return false
	}
	g.session = swipeSession{active: true, startedInCaptureArea: true}
	m.animator.Cancel(QuantityPosition)
	m.startPlaced = false
	m.driver = DriverGesture
	return true
}

// OnMove follows the finger. Displacement toward the open side is ignored.
func (g *GestureRecognizer) OnMove(dy float64) {
	m := g.m
	if !g.session.active || m.driver != DriverGesture {
		return
	}
	if g.openingDirection(dy) {
		return
	}
	if intent := g.closingIntent(dy); intent != g.session.closingIntent {
		g.session.closingIntent = intent
		if m.opts.OnClosingState != nil {
			m.opts.OnClosingState(intent)
		}
	}
	m.animator.SetValue(QuantityPosition, m.RestingPosition()+dy)
}

// OnRelease ends the gesture: past the threshold the modal closes,
// otherwise it snaps back to rest.
func (g *GestureRecognizer) OnRelease(dy float64) {
	m := g.m
	if !g.session.active || m.driver != DriverGesture {
		return
	}
	g.session = swipeSession{}
	m.driver = DriverIdle

	if g.closingIntent(dy) {
		m.log.Debug("swipe committed", "dy", dy, "threshold", m.opts.SwipeThreshold)
		m.dispatch(reqClose)
		if m.state == StateClosing {
			return
		}
	}
	if m.state != StateOpen || m.animator.Value(QuantityPosition) != m.RestingPosition() {
		m.dispatch(reqSnapBack)
	}
}

// OnTerminate handles a gesture interrupted by the platform like a release.
func (g *GestureRecognizer) OnTerminate(dy float64) {
	g.OnRelease(dy)
}

// Active reports whether a swipe session is in progress.
func (g *GestureRecognizer) Active() bool {
	return g.session.active
}

// ClosingIntent reports whether releasing now would close the modal.
func (g *GestureRecognizer) ClosingIntent() bool {
	return g.session.closingIntent
}

func (g *GestureRecognizer) closingIntent(dy float64) bool {
	if g.m.entry == EntryTop {
		return -dy > g.m.opts.SwipeThreshold
	}
	return dy > g.m.opts.SwipeThreshold
}

func (g *GestureRecognizer) openingDirection(dy float64) bool {
	if g.m.entry == EntryTop {
		return dy > 0
	}
	return dy < 0
}

func (g *GestureRecognizer) reset() {
	g.session = swipeSession{}
}
