package platform

import "github.com/go-drift/modalbox/pkg/errors"

// BackButtonService dispatches hardware back presses to registered handlers.
type BackButtonService struct {
	handlers handlerList[func() bool]
}

// NewBackButtonService creates an empty back-button dispatcher.
func NewBackButtonService() *BackButtonService {
	return &BackButtonService{}
}

// AddHandler registers a handler that returns true when it consumed the
// press. Returns a function that removes the handler; calling it twice is
// safe.
func (b *BackButtonService) AddHandler(handler func() bool) func() {
	return b.handlers.add(handler)
}

// Dispatch offers a back press to handlers, most recently added first, and
// stops at the first one that consumes it. A panicking handler is reported
// and treated as not consuming.
func (b *BackButtonService) Dispatch() bool {
	handlers := b.handlers.snapshot()
	for i := len(handlers) - 1; i >= 0; i-- {
		consumed := false
		h := handlers[i]
		errors.Guard("backbutton.dispatch", func() { consumed = h() })
		if consumed {
			return true
		}
	}
	return false
}

// HandlerCount returns the number of registered handlers.
func (b *BackButtonService) HandlerCount() int {
	return b.handlers.len()
}
