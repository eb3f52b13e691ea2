package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is pushed to every connected grid viewer when committed state
// changed; clients re-resolve the named date.
type Event struct {
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	CourtIDs []int64 `json:"court_ids"`
}

// Hub fans grid-invalidation events out to connected clients. Connections
// that fail a write are dropped; clients reconnect and re-resolve.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// GridInvalidated implements the notifier hook used by the selection and
// negotiation services.
func (h *Hub) GridInvalidated(date time.Time, courtIDs []int64) {
	h.broadcast(Event{
		Type:     "grid_invalidated",
		Date:     date.Format("2006-01-02"),
		CourtIDs: courtIDs,
	})
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(ev); err != nil {
			h.Unregister(c)
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		_ = c.Close()
		delete(h.conns, c)
	}
}
