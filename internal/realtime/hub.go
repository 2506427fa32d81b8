package realtime

import (
	"sync"

	"github.com/kashala/atm-finder-go/internal/models"
)

// Hub fans availability change events out to SSE subscribers. Events carry
// no payload diff; subscribers re-fetch the full state list on receipt.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan models.ChangeEvent]struct{}
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{subs: make(map[chan models.ChangeEvent]struct{})}
}

// Subscribe registers a new subscriber channel.
func (h *Hub) Subscribe() chan models.ChangeEvent {
	ch := make(chan models.ChangeEvent, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (h *Hub) Unsubscribe(ch chan models.ChangeEvent) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Notify delivers the event to every subscriber. Slow subscribers with a
// full buffer miss the event rather than blocking the writer.
func (h *Hub) Notify(ev models.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
