package ws

import (
	"context"
	"encoding/json"
	"sync"

	"kanban_backend/internal/domain"
	"kanban_backend/internal/logger"
)

// Hub tracks open connections per user. A user may hold several.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
	ActiveConnections.Inc()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	ActiveConnections.Dec()
}

// Connections reports how many sockets userID has open.
func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish delivers ev to userID's connections on this instance.
func (h *Hub) Publish(_ context.Context, userID int64, ev domain.Event) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	h.deliver(userID, msg)
	return nil
}

func (h *Hub) deliver(userID int64, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.Send <- msg:
			MessagesSent.Inc()
		default:
			MessagesDropped.Inc()
			logger.Warn("ws send buffer full, dropping message", "user_id", userID)
		}
	}
}
