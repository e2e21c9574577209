package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/al-solutions/salesdash/internal/dashboard"
	"github.com/al-solutions/salesdash/internal/infrastructure/observability"
)

const heartbeatInterval = 30 * time.Second

// snapshotBuffer bounds the per-client queue; slow clients drop intermediate
// snapshots rather than block the cycle.
const snapshotBuffer = 8

// StreamHandler handles Server-Sent Events for live dashboard snapshots
type StreamHandler struct {
	metrics *observability.Metrics

	mu      sync.RWMutex
	clients map[string]chan dashboard.Snapshot

	closeOnce sync.Once
	done      chan struct{}
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(metrics *observability.Metrics) *StreamHandler {
	return &StreamHandler{
		metrics: metrics,
		clients: make(map[string]chan dashboard.Snapshot),
		done:    make(chan struct{}),
	}
}

// StreamDashboard handles SSE connections for dashboard snapshot updates
// GET /api/dashboard/stream
func (h *StreamHandler) StreamDashboard(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The server-wide write timeout would cut the stream off mid-connection.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	clientID := uuid.New().String()
	clientChan := make(chan dashboard.Snapshot, snapshotBuffer)

	h.registerClient(r.Context(), clientID, clientChan)
	defer h.unregisterClient(clientID)

	// Send initial connection event
	h.sendEvent(w, "connected", map[string]interface{}{
		"client_id": clientID,
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("client_id", clientID).Msg("sse client disconnected")
			return
		case <-h.done:
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case snap := <-clientChan:
			h.sendEvent(w, "snapshot", snap)
			flusher.Flush()
		}
	}
}

// BroadcastSnapshot fans a completed snapshot out to every connected client.
// Sends are non-blocking: a full client queue drops this frame for that
// client. Registered as the controller's snapshot listener.
func (h *StreamHandler) BroadcastSnapshot(snap dashboard.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, clientChan := range h.clients {
		select {
		case clientChan <- snap:
		default:
			log.Debug().Str("client_id", id).Msg("sse client queue full, snapshot dropped")
		}
	}
}

// CloseAll releases every connected stream, used during server shutdown.
func (h *StreamHandler) CloseAll() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// ClientCount returns the number of connected clients
func (h *StreamHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *StreamHandler) registerClient(ctx context.Context, clientID string, clientChan chan dashboard.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[clientID] = clientChan
	observability.AddSSEClient(ctx, h.metrics, 1)
	log.Debug().Str("client_id", clientID).Int("total", len(h.clients)).Msg("sse client registered")
}

func (h *StreamHandler) unregisterClient(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, clientID)
	observability.AddSSEClient(context.Background(), h.metrics, -1)
	log.Debug().Str("client_id", clientID).Int("remaining", len(h.clients)).Msg("sse client unregistered")
}

// sendEvent sends an SSE event to the client
func (h *StreamHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal sse event")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
