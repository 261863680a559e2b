// Package events provides the in-process publish/subscribe dispatcher that
// decouples the application state from its observers. Dispatch is strictly
// synchronous: Publish invokes every matching handler on the calling
// goroutine, in registration order, before it returns.
package events

import "sync"

// Handler receives the payload of a published event.
type Handler func(payload any)

// Subscription identifies a single registered handler. It is returned by
// Subscribe and accepted by Unsubscribe.
type Subscription struct {
	name    string
	handler Handler
}

// Bus routes published events to subscribed handlers by exact event name.
//
// The registry is safe for concurrent Subscribe/Unsubscribe, but handlers
// run synchronously on the publishing goroutine with no isolation: a
// panicking handler aborts dispatch for the handlers registered after it.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]*Subscription
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*Subscription)}
}

// Subscribe registers h for events published under name. Multiple handlers
// may subscribe to the same name; they are invoked in registration order.
func (b *Bus) Subscribe(name string, h Handler) *Subscription {
	sub := &Subscription{name: name, handler: h}
	b.mu.Lock()
	b.subs[name] = append(b.subs[name], sub)
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a previously registered subscription. Unknown or
// already removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subs[sub.name]
	for i, s := range handlers {
		if s == sub {
			b.subs[sub.name] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.name]) == 0 {
		delete(b.subs, sub.name)
	}
}

// Publish synchronously invokes every handler subscribed to name, passing
// payload. Events with no subscribers are dropped.
func (b *Bus) Publish(name string, payload any) {
	b.mu.Lock()
	handlers := make([]*Subscription, len(b.subs[name]))
	copy(handlers, b.subs[name])
	b.mu.Unlock()

	for _, s := range handlers {
		s.handler(payload)
	}
}
