// Package ws serves engine sessions to vision clients over websockets.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Hub tracks the open client connections.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends v as JSON to every client, dropping clients that fail.
func (h *Hub) Broadcast(v any) {
	for _, conn := range h.snapshot() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := wsjson.Write(ctx, conn, v)
		cancel()
		if err != nil {
			h.Remove(conn)
			_ = conn.Close(websocket.StatusNormalClosure, "")
		}
	}
}

// CloseAll disconnects every client with reason.
func (h *Hub) CloseAll(reason string) {
	for _, conn := range h.snapshot() {
		h.Remove(conn)
		_ = conn.Close(websocket.StatusGoingAway, reason)
	}
}

func (h *Hub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	return conns
}
