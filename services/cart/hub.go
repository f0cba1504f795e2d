package cart

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the invalidation message pushed to every connected tab of a cart
// owner. Receivers refetch the cart; the event carries no cart data.
type Event struct {
	Event string `json:"event"`
}

// Hub fans cart invalidations out to websocket connections, grouped by cart
// owner (user id or guest id). One browser tab is one connection; a mutation
// in any tab reaches the owner's other tabs through here.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(owner string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[owner] == nil {
		h.rooms[owner] = make(map[*websocket.Conn]bool)
	}
	h.rooms[owner][conn] = true
}

func (h *Hub) Unregister(owner string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[owner], conn)
	if len(h.rooms[owner]) == 0 {
		delete(h.rooms, owner)
	}
}

// Publish sends a cart_updated event to every connection of the owner.
// Connections that fail to take the write are dropped from the room; the
// signal is best effort and never blocks the mutation that triggered it.
func (h *Hub) Publish(owner string) {
	data, err := json.Marshal(Event{Event: "cart_updated"})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.rooms[owner] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.rooms[owner], conn)
		}
	}
}
