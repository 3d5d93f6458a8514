package ws

import (
	"sync"
)

// Dispatcher delivers an event to every live session of a channel.
// Delivery is at-most-once: no queue, no retry, silent no-op when the
// channel has no sessions.
type Dispatcher interface {
	Emit(channel string, event Event)
}

// Session is one live connection. Send must not block; it reports
// whether the event was accepted.
type Session interface {
	Send(event Event) bool
}

// Hub is the room registry: it maps channel names to the sessions
// currently joined. Membership is rebuilt from zero on process restart;
// there is no recovery of events missed while disconnected.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Session]struct{}
	// reverse index so Leave does not scan every channel
	joined map[Session]string
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[Session]struct{}),
		joined:   make(map[Session]string),
	}
}

// Join adds a session to a channel. A user with several simultaneous
// connections (two browser tabs) holds several sessions in the same
// channel, and every one of them receives emitted events.
func (h *Hub) Join(channel string, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.joined[s]; ok {
		h.removeLocked(prev, s)
	}

	if h.channels[channel] == nil {
		h.channels[channel] = make(map[Session]struct{})
	}
	h.channels[channel][s] = struct{}{}
	h.joined[s] = channel
}

// Leave removes a session from its channel. Safe to call for a session
// that never joined or already left.
func (h *Hub) Leave(s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel, ok := h.joined[s]
	if !ok {
		return
	}
	h.removeLocked(channel, s)
	delete(h.joined, s)
}

func (h *Hub) removeLocked(channel string, s Session) {
	if members, ok := h.channels[channel]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Emit sends an event to every session in the channel. Sessions whose
// outbound buffer is full are skipped rather than blocked on.
func (h *Hub) Emit(channel string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.channels[channel] {
		s.Send(event)
	}
}

// SessionCount returns the number of live sessions in a channel.
func (h *Hub) SessionCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// TotalSessions returns the number of live sessions across all channels.
func (h *Hub) TotalSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, members := range h.channels {
		total += len(members)
	}
	return total
}
