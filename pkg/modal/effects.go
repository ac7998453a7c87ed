package modal

// request is an input to the state machine.
type request int

const (
	reqNone request = iota
	reqOpen
	reqClose
	// reqReposition moves an open or opening modal to a recomputed resting
	// position after a layout or keyboard change.
	reqReposition
	// reqSnapBack returns a dragged modal to its resting position.
	reqSnapBack
	// reqLayoutReady follows the first measurement.
	reqLayoutReady
	// reqSettleOpen and reqSettleClose follow a completed position
	// transition.
	reqSettleOpen
	reqSettleClose
)

var requestNames = [...]string{
	reqNone:        "none",
	reqOpen:        "open",
	reqClose:       "close",
	reqReposition:  "reposition",
	reqSnapBack:    "snap-back",
	reqLayoutReady: "layout-ready",
	reqSettleOpen:  "settle-open",
	reqSettleClose: "settle-close",
}

func (r request) String() string {
	if int(r) < len(requestNames) {
		return requestNames[r]
	}
	return "unknown"
}

type effectKind int

const (
	effectAnimateBackdrop effectKind = iota
	effectAnimatePosition
	effectPlacePosition
	effectPlaceBackdrop
	effectDeferOpen
	effectCancelDeferredOpen
	effectAddBackHandler
	effectRemoveBackHandler
	effectNotifyOpened
	effectNotifyClosed
)

// effect is a side effect planned by a state transition. Timed position
// effects feed their completion back in as the then request.
type effect struct {
	kind   effectKind
	target float64
	then   request
}

// dispatch runs one request through the state machine.
func (m *Modal) dispatch(req request) {
	if m.disposed || req == reqNone {
		return
	}
	next, effects := m.plan(req)
	m.commit(req, next, effects)
}

// plan computes the next state and the effects that follow it. It reads the
// modal but never writes it.
func (m *Modal) plan(req request) (State, []effect) {
	s := m.state
	switch req {
	case reqOpen:
		if m.disabled || s == StateOpening || s == StateOpen {
			return s, nil
		}
		if !m.layout.Initialized() {
			return StateOpening, []effect{{kind: effectDeferOpen}}
		}
		return StateOpening, m.openEffects()

	case reqLayoutReady:
		switch {
		case s == StateOpening && m.deferredOpen:
			return s, append([]effect{{kind: effectCancelDeferredOpen}}, m.openEffects()...)
		case s == StateOpen:
			return s, []effect{{kind: effectPlacePosition, target: m.RestingPosition()}}
		case s == StateClosed:
			return s, []effect{{kind: effectPlacePosition, target: m.closedPosition()}}
		}

	case reqClose:
		if m.disabled || (s != StateOpen && s != StateOpening) {
			return s, nil
		}
		effects := []effect{{kind: effectCancelDeferredOpen}}
		if m.opts.Backdrop {
			effects = append(effects, effect{kind: effectAnimateBackdrop, target: 0})
		}
		effects = append(effects,
			effect{kind: effectAnimatePosition, target: m.closedPosition(), then: reqSettleClose},
			effect{kind: effectRemoveBackHandler},
		)
		return StateClosing, effects

	case reqReposition:
		if m.driver == DriverGesture || m.deferredOpen {
			return s, nil
		}
		switch s {
		case StateOpen, StateOpening:
			if s == StateOpen && m.startPlaced {
				return s, []effect{{kind: effectPlacePosition, target: m.RestingPosition()}}
			}
			return s, []effect{{kind: effectAnimatePosition, target: m.RestingPosition(), then: reqSettleOpen}}
		case StateClosed:
			if target := m.closedPosition(); m.animator.Value(QuantityPosition) != target {
				return s, []effect{{kind: effectPlacePosition, target: target}}
			}
		}

	case reqSnapBack:
		if s != StateOpen && s != StateOpening {
			return s, nil
		}
		return StateOpening, []effect{{kind: effectAnimatePosition, target: m.RestingPosition(), then: reqSettleOpen}}

	case reqSettleOpen:
		if s != StateOpening {
			return s, nil
		}
		if m.openNotified {
			return StateOpen, nil
		}
		return StateOpen, []effect{{kind: effectNotifyOpened}}

	case reqSettleClose:
		if s == StateClosing {
			return StateClosed, []effect{{kind: effectNotifyClosed}}
		}
	}
	return s, nil
}

func (m *Modal) openEffects() []effect {
	var effects []effect
	if m.opts.Backdrop {
		effects = append(effects, effect{kind: effectAnimateBackdrop, target: 1})
	}
	effects = append(effects, effect{kind: effectAnimatePosition, target: m.RestingPosition(), then: reqSettleOpen})
	if m.opts.BackButtonClose {
		effects = append(effects, effect{kind: effectAddBackHandler})
	}
	return effects
}

// commit stores the planned state, then runs its effects in order.
func (m *Modal) commit(req request, next State, effects []effect) {
	if next != m.state {
		m.log.Debug("modal state", "from", m.state.String(), "to", next.String(), "request", req.String())
		m.state = next
		if next == StateClosing || next == StateClosed {
			m.openNotified = false
		}
		m.syncVisibility()
	}
	for _, e := range effects {
		m.apply(e)
	}
}

func (m *Modal) apply(e effect) {
	switch e.kind {
	case effectAnimateBackdrop:
		m.animator.AnimateTo(QuantityBackdrop, e.target, nil)
	case effectAnimatePosition:
		m.gesture.reset()
		m.startPlaced = false
		m.driver = DriverTimed
		then := e.then
		m.animator.AnimateTo(QuantityPosition, e.target, func() {
			m.driver = DriverIdle
			m.dispatch(then)
		})
	case effectPlacePosition:
		m.gesture.reset()
		m.driver = DriverIdle
		m.animator.SetValue(QuantityPosition, e.target)
	case effectPlaceBackdrop:
		m.animator.SetValue(QuantityBackdrop, e.target)
	case effectDeferOpen:
		m.deferredOpen = true
	case effectCancelDeferredOpen:
		m.deferredOpen = false
	case effectAddBackHandler:
		if m.opts.BackButton != nil && m.removeBack == nil {
			m.removeBack = m.opts.BackButton.AddHandler(m.onBackPress)
		}
	case effectRemoveBackHandler:
		if m.removeBack != nil {
			m.removeBack()
			m.removeBack = nil
		}
	case effectNotifyOpened:
		m.openNotified = true
		if m.opts.OnOpened != nil {
			m.opts.OnOpened()
		}
	case effectNotifyClosed:
		if m.opts.OnClosed != nil {
			m.opts.OnClosed()
		}
	}
}
