package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "ws_connections",
	Help: "Number of connected realtime clients",
})

func init() { prometheus.MustRegister(wsConnections) }

// sendBuffer bounds each client's outbound queue; a client that cannot
// drain it loses messages instead of blocking the broadcast.
const sendBuffer = 64

// Hub is the connection registry of the broadcast layer: id to send
// channel, mutated only by Register and Unregister. Broadcast pushes to
// every connected client with no targeting and no acknowledgment.
type Hub struct {
	log *zap.Logger

	mu    sync.RWMutex
	conns map[string]chan []byte
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[string]chan []byte),
	}
}

// Register adds a connection and returns its id and send channel.
func (h *Hub) Register() (string, chan []byte) {
	id := uuid.NewString()
	ch := make(chan []byte, sendBuffer)

	h.mu.Lock()
	h.conns[id] = ch
	h.mu.Unlock()

	wsConnections.Inc()
	h.log.Debug("client connected", zap.String("conn_id", id))
	return id, ch
}

// Unregister removes a connection and closes its send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	ch, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		wsConnections.Dec()
		h.log.Debug("client disconnected", zap.String("conn_id", id))
	}
}

// Broadcast sends the event to all connected clients, the sender
// included. Full send buffers are dropped, not waited on.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.log.Error("broadcast marshal failed", zap.String("event", event), zap.Error(err))
		return
	}
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error("broadcast marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.conns {
		select {
		case ch <- msg:
		default:
			h.log.Warn("dropping broadcast to slow client",
				zap.String("conn_id", id),
				zap.String("event", event),
			)
		}
	}
}

// ConnCount reports the number of registered connections.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
