package modal_test

import (
	"fmt"
	"time"

	"github.com/go-drift/modalbox/pkg/animation"
	"github.com/go-drift/modalbox/pkg/modal"
	drifttest "github.com/go-drift/modalbox/pkg/testing"
)

// This example opens a bottom sheet and steps a fake clock until it settles.
func ExampleModal() {
	clk := drifttest.NewFakeClock()
	sched := animation.NewScheduler(clk)

	opts := modal.DefaultOptions()
	opts.Anchor = modal.AnchorBottom
	opts.OnOpened = func() { fmt.Println("opened") }
	opts.OnClosed = func() { fmt.Println("closed") }

	m, err := modal.New(sched, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer m.Dispose()

	m.OnContainerMeasured(modal.Size{Width: 390, Height: 800})
	m.OnContentMeasured(modal.Size{Width: 390, Height: 200})
	fmt.Println("resting:", m.RestingPosition())

	m.Open()
	drifttest.PumpFor(sched, clk, 16*time.Millisecond, time.Second)
	f := m.Frame()
	fmt.Printf("state: %s, position: %.0f, backdrop: %.1f\n", m.State(), f.Position, f.Backdrop)

	m.Close()
	drifttest.PumpFor(sched, clk, 16*time.Millisecond, time.Second)
	fmt.Println("visible:", m.Visible())

	// Output:
	// resting: 600
	// opened
	// state: open, position: 600, backdrop: 0.5
	// closed
	// visible: false
}

// This example drags a bottom sheet past the swipe threshold.
func ExampleGestureRecognizer() {
	clk := drifttest.NewFakeClock()
	sched := animation.NewScheduler(clk)

	opts := modal.DefaultOptions()
	opts.Anchor = modal.AnchorBottom
	opts.OnClosingState = func(closing bool) { fmt.Println("closing intent:", closing) }

	m, _ := modal.New(sched, opts)
	defer m.Dispose()
	m.OnContainerMeasured(modal.Size{Width: 390, Height: 800})
	m.OnContentMeasured(modal.Size{Width: 390, Height: 200})
	m.Open()
	drifttest.PumpFor(sched, clk, 16*time.Millisecond, time.Second)

	g := m.Gesture()
	fmt.Println("captured:", g.ShouldCapture(modal.PanStart{Y: 620}))
	for _, dy := range []float64{20, 40, 60, 80} {
		g.OnMove(dy)
	}
	g.OnRelease(80)
	fmt.Println("state:", m.State())

	// Output:
	// captured: true
	// closing intent: true
	// state: closing
}
