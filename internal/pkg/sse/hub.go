package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	StreamID string
	Event    string
	Data     interface{}
}

// Hub manages SSE subscribers and event broadcasting. Each open stream
// subscribes under its own ID.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  16,
	}
}

// Subscribe registers a new subscriber for a stream and returns the event
// channel and an idempotent cleanup function that closes it.
func (h *Hub) Subscribe(streamID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[streamID] == nil {
		h.subscribers[streamID] = make(map[chan Event]struct{})
	}
	h.subscribers[streamID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[streamID], ch)
			close(ch)
			if len(h.subscribers[streamID]) == 0 {
				delete(h.subscribers, streamID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific stream
func (h *Hub) Publish(streamID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.StreamID = streamID
	for ch := range h.subscribers[streamID] {
		send(ch, event)
	}
}

// Broadcast sends an event to every open stream
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for streamID, subs := range h.subscribers {
		eventCopy := event
		eventCopy.StreamID = streamID
		for ch := range subs {
			send(ch, eventCopy)
		}
	}
}

func send(ch chan Event, event Event) {
	select {
	case ch <- event:
	default:
		// Skip if channel is full (non-blocking to prevent deadlock)
	}
}

// SubscriberCount returns the number of active subscribers for a stream
func (h *Hub) SubscriberCount(streamID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[streamID])
}

// TotalSubscribers returns the total number of active subscribers across all streams
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
