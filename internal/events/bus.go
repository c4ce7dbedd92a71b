package events

import (
	"sync"

	"github.com/hytaletravelers/playerstats/internal/model"
)

// Handler processes one game event. Handlers run on the publishing
// goroutine, which may be any of the host's worker contexts.
type Handler func(model.GameEvent)

// Source is the subscription surface the tracking core depends on.
// The host runtime owns event delivery; this abstraction is the seam.
type Source interface {
	Subscribe(t model.EventType, h Handler)
}

// Bus is an in-process event source the host publishes into
type Bus struct {
	mu       sync.RWMutex
	handlers map[model.EventType][]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[model.EventType][]Handler),
	}
}

var _ Source = (*Bus)(nil)

// Subscribe registers a handler for one event type
func (b *Bus) Subscribe(t model.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish delivers an event to every handler registered for its type,
// synchronously on the calling goroutine.
func (b *Bus) Publish(e model.GameEvent) {
	b.mu.RLock()
	hs := b.handlers[e.Type]
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}
