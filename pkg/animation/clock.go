package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time. Tests pass a fake clock to NewScheduler to control
// animation timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock time source used when no clock is given.
var SystemClock Clock = realClock{}
