package platform

import (
	"sync"

	"github.com/go-drift/modalbox/pkg/errors"
)

// PresentationService models the full-screen presentation surface a
// cover-screen modal is mounted on. The surface can ask to be dismissed
// (for example on a system back gesture) through RequestClose.
type PresentationService struct {
	mu             sync.Mutex
	showing        bool
	onRequestClose func()
	listeners      handlerList[func(showing bool)]
}

// NewPresentationService creates a hidden presentation surface.
func NewPresentationService() *PresentationService {
	return &PresentationService{}
}

// Show mounts the surface. onRequestClose is called when the surface asks to
// be dismissed while shown.
func (p *PresentationService) Show(onRequestClose func()) {
	p.mu.Lock()
	changed := !p.showing
	p.showing = true
	p.onRequestClose = onRequestClose
	p.mu.Unlock()
	if changed {
		p.notify(true)
	}
}

// Hide unmounts the surface.
func (p *PresentationService) Hide() {
	p.mu.Lock()
	changed := p.showing
	p.showing = false
	p.onRequestClose = nil
	p.mu.Unlock()
	if changed {
		p.notify(false)
	}
}

// Showing reports whether the surface is mounted.
func (p *PresentationService) Showing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.showing
}

// RequestClose forwards a dismissal request from the surface. It returns
// false when the surface is hidden or nobody is listening.
func (p *PresentationService) RequestClose() bool {
	p.mu.Lock()
	cb := p.onRequestClose
	showing := p.showing
	p.mu.Unlock()
	if !showing || cb == nil {
		return false
	}
	return errors.Guard("presentation.requestClose", cb)
}

// AddHandler registers a handler called whenever the surface is shown or
// hidden. Returns a function that removes the handler.
func (p *PresentationService) AddHandler(handler func(showing bool)) func() {
	return p.listeners.add(handler)
}

func (p *PresentationService) notify(showing bool) {
	for _, h := range p.listeners.snapshot() {
		errors.Guard("presentation.listener", func() { h(showing) })
	}
}
