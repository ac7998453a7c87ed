package modal

import (
	"testing"

	"github.com/go-drift/modalbox/pkg/platform"
)

func openBottomSheet(t *testing.T, configure func(*Options)) *harness {
	t.Helper()
	h := newHarness(t, func(o *Options) {
		o.Anchor = AnchorBottom
		if configure != nil {
			configure(o)
		}
	})
	h.measure(200, 800)
	h.openAndSettle()
	return h
}

func TestSwipePastThresholdCloses(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()

	if !g.ShouldCapture(PanStart{Y: 650}) {
		t.Fatal("gesture on an open modal should be captured")
	}
	if h.m.Driver() != DriverGesture {
		t.Errorf("Driver() = %v, want gesture", h.m.Driver())
	}
	g.OnMove(30)
	if h.position() != 630 {
		t.Errorf("position = %v, want resting + displacement 630", h.position())
	}
	g.OnMove(80)
	if !g.ClosingIntent() {
		t.Error("displacement past the threshold should signal closing intent")
	}
	g.OnRelease(80)

	if h.m.State() != StateClosing {
		t.Fatalf("State() = %v, want closing", h.m.State())
	}
	if g.Active() {
		t.Error("release should end the swipe session")
	}
	h.settle()
	if h.m.State() != StateClosed || h.position() != 800 || h.closed != 1 {
		t.Errorf("state=%v position=%v closed=%d", h.m.State(), h.position(), h.closed)
	}
}

func TestSwipeBelowThresholdSnapsBack(t *testing.T) {
	for _, dy := range []float64{10, 49, 50} {
		h := openBottomSheet(t, nil)
		g := h.m.Gesture()
		g.ShouldCapture(PanStart{Y: 650})
		g.OnMove(dy)
		g.OnRelease(dy)

		if h.m.State() != StateOpening {
			t.Fatalf("dy=%v: State() = %v, want opening (snap back)", dy, h.m.State())
		}
		if h.m.Driver() != DriverTimed {
			t.Errorf("dy=%v: Driver() = %v, want timed", dy, h.m.Driver())
		}
		h.settle()
		if h.m.State() != StateOpen || h.position() != 600 {
			t.Errorf("dy=%v: state=%v position=%v, want open at 600", dy, h.m.State(), h.position())
		}
		if h.opened != 1 {
			t.Errorf("dy=%v: snap back repeated opened: %d", dy, h.opened)
		}
	}
}

func TestReleaseAtRestDoesNothing(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()
	g.ShouldCapture(PanStart{Y: 650})
	g.OnRelease(0)

	if h.m.State() != StateOpen || h.m.Driver() != DriverIdle {
		t.Errorf("state=%v driver=%v, want open and idle", h.m.State(), h.m.Driver())
	}
	if h.sched.HasActiveTickers() {
		t.Error("a modal already at rest should not snap back")
	}
}

func TestClosingIntentFiresOncePerCrossing(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()
	g.ShouldCapture(PanStart{Y: 650})
	for dy := 0.0; dy <= 200; dy += 5 {
		g.OnMove(dy)
	}
	if len(h.intents) != 1 || !h.intents[0] {
		t.Fatalf("intents = %v, want [true]", h.intents)
	}

	g.OnMove(20)
	g.OnMove(10)
	g.OnMove(60)
	if want := []bool{true, false, true}; !equalBools(h.intents, want) {
		t.Errorf("intents = %v, want %v", h.intents, want)
	}
}

func TestOpeningDirectionIgnored(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()
	g.ShouldCapture(PanStart{Y: 650})
	g.OnMove(-40)
	if h.position() != 600 {
		t.Errorf("upward drag moved the sheet to %v", h.position())
	}
	if len(h.intents) != 0 {
		t.Errorf("upward drag emitted intents %v", h.intents)
	}
}

func TestTopEntryInvertsThreshold(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.Anchor = AnchorTop })
	h.measure(200, 800)
	h.openAndSettle()
	if h.position() != 0 {
		t.Fatalf("position = %v, want 0", h.position())
	}

	g := h.m.Gesture()
	if !g.ShouldCapture(PanStart{Y: 100}) {
		t.Fatal("capture rejected")
	}
	g.OnMove(30)
	if h.position() != 0 {
		t.Errorf("downward drag of a top modal moved it to %v", h.position())
	}
	g.OnMove(-60)
	if h.position() != -60 || !g.ClosingIntent() {
		t.Errorf("position=%v intent=%v, want -60 and true", h.position(), g.ClosingIntent())
	}
	g.OnRelease(-60)
	h.settle()
	if h.m.State() != StateClosed || h.position() != -800 {
		t.Errorf("state=%v position=%v, want closed at -800", h.m.State(), h.position())
	}
}

func TestSwipeDisabledNeverCaptures(t *testing.T) {
	h := openBottomSheet(t, func(o *Options) { o.SwipeToClose = false })
	for y := -100.0; y <= 1000; y += 50 {
		if h.m.Gesture().ShouldCapture(PanStart{Y: y}) {
			t.Fatalf("ShouldCapture(%v) = true with swipe disabled", y)
		}
	}
	if h.m.Driver() != DriverIdle {
		t.Errorf("Driver() = %v, want idle", h.m.Driver())
	}
}

func TestCaptureRejections(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.Anchor = AnchorBottom })
	h.measure(200, 800)
	if h.m.Gesture().ShouldCapture(PanStart{Y: 650}) {
		t.Error("closed modal should reject gestures")
	}

	h.openAndSettle()
	h.m.Close()
	if h.m.Gesture().ShouldCapture(PanStart{Y: 650}) {
		t.Error("closing modal should reject gestures")
	}

	d := openBottomSheet(t, nil)
	d.m.SetDisabled(true)
	if d.m.Gesture().ShouldCapture(PanStart{Y: 650}) {
		t.Error("disabled modal should reject gestures")
	}
}

func TestSwipeArea(t *testing.T) {
	h := openBottomSheet(t, func(o *Options) { o.SwipeArea = 100 })
	g := h.m.Gesture()
	if !g.ShouldCapture(PanStart{Y: 700}) {
		t.Error("start inside the capture area should be accepted")
	}
	g.OnRelease(0)
	if g.ShouldCapture(PanStart{Y: 701}) {
		t.Error("start beyond the capture area should be rejected")
	}
}

func TestCaptureTakesOverOpeningTransition(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.Anchor = AnchorBottom })
	h.measure(200, 800)
	h.m.Open()
	h.pump(2)

	g := h.m.Gesture()
	if !g.ShouldCapture(PanStart{Y: 700}) {
		t.Fatal("opening modal should accept gestures")
	}
	if h.m.Animator().Animating(QuantityPosition) {
		t.Error("capture must stop the timed position transition")
	}
	held := h.position()
	h.pump(3)
	if h.position() != held {
		t.Error("position moved without a driver")
	}

	g.OnMove(10)
	g.OnRelease(10)
	h.settle()
	if h.m.State() != StateOpen || h.position() != 600 || h.opened != 1 {
		t.Errorf("state=%v position=%v opened=%d", h.m.State(), h.position(), h.opened)
	}
}

func TestCloseDuringSwipeEndsSession(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()
	g.ShouldCapture(PanStart{Y: 650})
	g.OnMove(20)
	h.m.Close()

	if g.Active() || h.m.Driver() != DriverTimed {
		t.Errorf("active=%v driver=%v, want session ended and timed driver", g.Active(), h.m.Driver())
	}
	g.OnMove(30)
	g.OnRelease(30)
	h.settle()
	if h.m.State() != StateClosed || h.closed != 1 {
		t.Errorf("state=%v closed=%d", h.m.State(), h.closed)
	}
}

func TestLayoutChangeDuringSwipeWaits(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()
	g.ShouldCapture(PanStart{Y: 650})
	g.OnMove(20)
	h.m.OnContainerMeasured(Size{Width: 390, Height: 700})
	if h.m.Driver() != DriverGesture || h.position() != 620 {
		t.Errorf("driver=%v position=%v, want the gesture to keep the position", h.m.Driver(), h.position())
	}

	g.OnTerminate(20)
	h.settle()
	if h.position() != 500 {
		t.Errorf("position = %v, want the new resting position 500", h.position())
	}
}

func TestDisabledDuringSwipeSnapsBack(t *testing.T) {
	h := openBottomSheet(t, nil)
	g := h.m.Gesture()
	g.ShouldCapture(PanStart{Y: 650})
	g.OnMove(120)
	h.m.SetDisabled(true)
	g.OnRelease(120)

	if h.m.State() != StateOpening {
		t.Fatalf("State() = %v, want opening (snap back)", h.m.State())
	}
	h.settle()
	if h.position() != 600 {
		t.Errorf("position = %v, want 600", h.position())
	}
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCaptureWaitsForFirstMeasurement(t *testing.T) {
	back := platform.NewBackButtonService()
	h := newHarness(t, func(o *Options) {
		o.Anchor = AnchorBottom
		o.BackButtonClose = true
		o.BackButton = back
	})
	h.m.Open()

	g := h.m.Gesture()
	if g.ShouldCapture(PanStart{Y: 10}) {
		t.Fatal("a deferred open has nothing to drag yet")
	}
	g.OnMove(5)
	g.OnRelease(5)
	h.settle()
	if h.m.State() != StateOpening || h.m.Driver() != DriverIdle {
		t.Fatalf("state=%v driver=%v, want opening and idle", h.m.State(), h.m.Driver())
	}

	h.measure(200, 800)
	h.settle()
	if h.m.State() != StateOpen || h.position() != 600 || h.m.Frame().Backdrop != 0.5 {
		t.Errorf("state=%v position=%v backdrop=%v, want open at 600 with backdrop", h.m.State(), h.position(), h.m.Frame().Backdrop)
	}
	if back.HandlerCount() != 1 {
		t.Errorf("HandlerCount() = %d, want 1", back.HandlerCount())
	}

	h.m.OnContainerMeasured(Size{Width: 390, Height: 600})
	h.settle()
	if h.position() != 400 {
		t.Errorf("position = %v after resize, want 400", h.position())
	}
}

func TestSecondPanKeepsActiveSwipe(t *testing.T) {
	h := openBottomSheet(t, func(o *Options) { o.SwipeArea = 50 })
	g := h.m.Gesture()
	if !g.ShouldCapture(PanStart{Y: 610}) {
		t.Fatal("start inside the capture area should be accepted")
	}
	g.OnMove(30)

	if g.ShouldCapture(PanStart{Y: 790}) {
		t.Error("a second pan should be rejected during a swipe")
	}
	if g.ShouldCapture(PanStart{Y: 610}) {
		t.Error("a second pan inside the capture area should also be rejected")
	}
	if !g.Active() || h.m.Driver() != DriverGesture {
		t.Fatalf("active=%v driver=%v, want the first swipe to continue", g.Active(), h.m.Driver())
	}

	g.OnMove(40)
	if h.position() != 640 {
		t.Errorf("position = %v, want the swipe to keep following the finger", h.position())
	}
	g.OnRelease(40)
	if h.m.Driver() != DriverTimed {
		t.Errorf("Driver() = %v after release, want timed", h.m.Driver())
	}

	h.m.OnContainerMeasured(Size{Width: 390, Height: 700})
	h.settle()
	if h.m.State() != StateOpen || h.position() != 500 {
		t.Errorf("state=%v position=%v, want open at 500", h.m.State(), h.position())
	}
	if h.opened != 1 {
		t.Errorf("opened = %d, want 1", h.opened)
	}
}
