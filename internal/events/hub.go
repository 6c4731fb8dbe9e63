package events

import (
	"sync"

	"go.uber.org/fx"
)

// Hub fans out change notifications to registered subscribers after any
// mutating operation commits. Delivery is synchronous and best-effort; a
// panicking subscriber is dropped rather than taking the caller down.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]func()
	nextID uint64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func())}
}

// Subscribe registers a callback and returns an unsubscribe func. The
// callback runs on the mutating goroutine; keep it short.
func (h *Hub) Subscribe(callback func()) func() {
	if callback == nil {
		return func() {}
	}
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = callback
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Notify invokes every subscriber. Order across subscribers is unspecified.
func (h *Hub) Notify() {
	h.mu.RLock()
	callbacks := make([]func(), 0, len(h.subs))
	for _, cb := range h.subs {
		callbacks = append(callbacks, cb)
	}
	h.mu.RUnlock()

	for _, cb := range callbacks {
		func() {
			defer func() { _ = recover() }()
			cb()
		}()
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var Module = fx.Module("events",
	fx.Provide(NewHub),
)
