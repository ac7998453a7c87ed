package platform

import (
	"sync"

	"github.com/go-drift/modalbox/pkg/errors"
)

// KeyboardChannel is the channel name of the keyboard event feed.
const KeyboardChannel = "modalbox/keyboard/events"

// Keyboard event names carried in the "event" field of a raw payload.
const (
	KeyboardEventFrame = "frame"
	KeyboardEventHide  = "hide"
)

// KeyboardService turns raw keyboard events into frame and hide callbacks.
//
// A frame event is a map {"event": "frame", "screenY": <number>} where
// screenY is the top edge of the keyboard in container coordinates. A hide
// event is {"event": "hide"}. Malformed payloads are reported with
// errors.KindParsing and dropped.
type KeyboardService struct {
	events *EventChannel
	sub    *Subscription
	frames handlerList[func(screenY float64)]
	hides  handlerList[func()]

	mu      sync.RWMutex
	visible bool
	screenY float64
}

// NewKeyboardService creates a keyboard service listening on its own channel.
func NewKeyboardService() *KeyboardService {
	k := &KeyboardService{events: NewEventChannel(KeyboardChannel)}
	k.sub = k.events.Listen(EventHandler{
		OnEvent: k.handleEvent,
		OnError: func(err error) {
			errors.Report(&errors.ModalError{
				Op:      "keyboard.streamError",
				Kind:    errors.KindPlatform,
				Channel: KeyboardChannel,
				Err:     err,
			})
		},
	})
	return k
}

// Events returns the channel hosts emit raw keyboard payloads on.
func (k *KeyboardService) Events() *EventChannel {
	return k.events
}

// Subscribe registers frame and hide callbacks. Either may be nil.
// Returns a function that removes both.
func (k *KeyboardService) Subscribe(onFrame func(screenY float64), onHide func()) func() {
	var removeFrame, removeHide func()
	if onFrame != nil {
		removeFrame = k.frames.add(onFrame)
	}
	if onHide != nil {
		removeHide = k.hides.add(onHide)
	}
	return func() {
		if removeFrame != nil {
			removeFrame()
		}
		if removeHide != nil {
			removeHide()
		}
	}
}

// Show emits a frame event placing the keyboard top edge at screenY.
func (k *KeyboardService) Show(screenY float64) {
	k.events.Emit(map[string]any{"event": KeyboardEventFrame, "screenY": screenY})
}

// Hide emits a hide event.
func (k *KeyboardService) Hide() {
	k.events.Emit(map[string]any{"event": KeyboardEventHide})
}

// State returns whether the keyboard is visible and its last top edge.
func (k *KeyboardService) State() (visible bool, screenY float64) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.visible, k.screenY
}

// Close stops the service and ends its event channel.
func (k *KeyboardService) Close() {
	k.sub.Cancel()
	k.events.Close()
}

func (k *KeyboardService) handleEvent(data any) {
	m, ok := data.(map[string]any)
	if !ok {
		errors.ReportParse("keyboard.parseEvent", KeyboardChannel, "KeyboardEvent", data)
		return
	}
	switch m["event"] {
	case KeyboardEventFrame:
		y, ok := toFloat(m["screenY"])
		if !ok {
			errors.ReportParse("keyboard.parseEvent", KeyboardChannel, "KeyboardFrame", m["screenY"])
			return
		}
		k.mu.Lock()
		k.visible, k.screenY = true, y
		k.mu.Unlock()
		for _, h := range k.frames.snapshot() {
			errors.Guard("keyboard.frame", func() { h(y) })
		}
	case KeyboardEventHide:
		k.mu.Lock()
		k.visible = false
		k.mu.Unlock()
		for _, h := range k.hides.snapshot() {
			errors.Guard("keyboard.hide", h)
		}
	default:
		errors.ReportParse("keyboard.parseEvent", KeyboardChannel, "KeyboardEvent", m["event"])
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
