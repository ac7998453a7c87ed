package platform

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/modalbox/pkg/errors"
)

// EventHandler receives events from an EventChannel.
type EventHandler struct {
	OnEvent func(data any)
	OnError func(err error)
	OnDone  func()
}

// Subscription represents an active event subscription.
type Subscription struct {
	channel  *EventChannel
	handler  *EventHandler
	canceled atomic.Bool
}

// Cancel stops receiving events on this subscription.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.channel.removeSubscription(s)
	}
}

// IsCanceled returns true if this subscription has been canceled.
func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// EventChannel fans raw platform events out to its subscribers.
type EventChannel struct {
	name          string
	subscriptions []*Subscription
	closed        bool
	mu            sync.Mutex
}

// NewEventChannel creates a new event channel with the given name.
func NewEventChannel(name string) *EventChannel {
	return &EventChannel{name: name}
}

// Name returns the channel name.
func (c *EventChannel) Name() string {
	return c.name
}

// Listen subscribes to events on this channel. Listening on a closed channel
// calls OnDone immediately and returns a canceled subscription.
func (c *EventChannel) Listen(handler EventHandler) *Subscription {
	sub := &Subscription{
		channel: c,
		handler: &handler,
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		sub.canceled.Store(true)
		if handler.OnDone != nil {
			errors.Guard(c.name+".done", handler.OnDone)
		}
		return sub
	}
	c.subscriptions = append(c.subscriptions, sub)
	c.mu.Unlock()
	return sub
}

// SubscriberCount returns the number of active subscriptions.
func (c *EventChannel) SubscriberCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscriptions)
}

// Emit delivers data to every active subscriber.
func (c *EventChannel) Emit(data any) {
	subs, ok := c.snapshot()
	if !ok {
		errors.Report(&errors.ModalError{
			Op:      "channel.emit",
			Kind:    errors.KindPlatform,
			Channel: c.name,
			Err:     ErrClosed,
		})
		return
	}
	for _, sub := range subs {
		if !sub.IsCanceled() && sub.handler.OnEvent != nil {
			errors.Guard(c.name+".event", func() { sub.handler.OnEvent(data) })
		}
	}
}

// EmitError delivers a stream error to every active subscriber.
func (c *EventChannel) EmitError(err error) {
	subs, ok := c.snapshot()
	if !ok {
		return
	}
	for _, sub := range subs {
		if !sub.IsCanceled() && sub.handler.OnError != nil {
			errors.Guard(c.name+".error", func() { sub.handler.OnError(err) })
		}
	}
}

// Close ends the stream. Subscribers receive OnDone and are canceled.
func (c *EventChannel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subscriptions
	c.subscriptions = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.canceled.Store(true)
		if sub.handler.OnDone != nil {
			errors.Guard(c.name+".done", sub.handler.OnDone)
		}
	}
}

func (c *EventChannel) snapshot() ([]*Subscription, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, false
	}
	subs := make([]*Subscription, len(c.subscriptions))
	copy(subs, c.subscriptions)
	return subs, true
}

func (c *EventChannel) removeSubscription(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subscriptions {
		if s == sub {
			c.subscriptions = append(c.subscriptions[:i], c.subscriptions[i+1:]...)
			break
		}
	}
}
