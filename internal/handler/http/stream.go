package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

const (
	EventPresence = "presence"
	EventClock    = "clock"

	streamKeepalive = 30 * time.Second
)

// Stream handles GET /presence/stream. The open stream is the active presence
// view: it owns a one-second clock that is released when the client leaves.
// Connecting only reads the current state; a reconnect keeps the selection and
// any pending location request. POST /presence/activate resets the view.
func (h *presenceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	status, err := h.controller.Status(ctx)
	if err != nil {
		slog.Error("Failed to load presence view", "error", err)
		http.Error(w, "Failed to load presence", http.StatusInternalServerError)
		return
	}

	streamID := uuid.NewString()
	events, cleanup := h.hub.Subscribe(streamID)
	defer cleanup()

	clock := cron.StartPresenceClock(ctx, h.clock, func(ev presence.ClockEvent) {
		h.hub.Publish(streamID, sse.Event{Event: EventClock, Data: ev})
	})
	defer clock.Stop()

	slog.Debug("Presence view opened", "stream_id", streamID)
	defer slog.Debug("Presence view closed", "stream_id", streamID)

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: connected\ndata: {\"stream_id\":%q}\n\n", streamID)
	writeEvent(w, EventPresence, status)
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			writeEvent(w, event.Event, event.Data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode SSE event", "event", name, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
}

// BroadcastPresence returns a controller listener that pushes every state
// change to all open presence views.
func BroadcastPresence(hub *sse.Hub) func(presence.StatusResponse) {
	return func(status presence.StatusResponse) {
		hub.Broadcast(sse.Event{Event: EventPresence, Data: status})
	}
}
