// Package testing provides deterministic time control for animation and
// modal tests.
//
// # Animation Testing
//
// Build the scheduler on a FakeClock and pump frames explicitly:
//
//	clk := drifttest.NewFakeClock()
//	sched := animation.NewScheduler(clk)
//	m, _ := modal.New(sched, modal.DefaultOptions())
//	m.Open()
//	drifttest.PumpFor(sched, clk, 16*time.Millisecond, 500*time.Millisecond)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/modalbox/pkg/testing"
package testing
