// Package realtime routes advisory push signals to whichever live connection
// currently represents a recipient. The registry is a delivery optimization
// only: it is empty after a restart and the durable notification store stays
// the source of truth.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Client is one registered live session. Signals are delivered through a
// buffered channel; the transport layer drains it and writes to the socket.
type Client struct {
	signals chan struct{}
}

func NewClient() *Client {
	return &Client{signals: make(chan struct{}, 8)}
}

// Signals is the channel the transport's write loop consumes.
func (c *Client) Signals() <-chan struct{} {
	return c.signals
}

// Hub is the process-wide recipient-to-connection registry. At most one
// client is retained per recipient; a second registration for the same
// recipient silently replaces the first.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]*Client)}
}

// Register installs client as the live connection for recipientID,
// replacing any previous one (last registration wins).
func (h *Hub) Register(recipientID uuid.UUID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[recipientID] = client
}

// Unregister removes the registry entry only if it still points at client,
// so a stale disconnect never evicts a newer registration.
func (h *Hub) Unregister(recipientID uuid.UUID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[recipientID] == client {
		delete(h.clients, recipientID)
	}
}

// Signal pushes a content-free hint to the recipient's live connection. It
// is a no-op when the recipient is offline and never blocks: if the client's
// buffer is full a signal is already pending, which is enough.
func (h *Hub) Signal(recipientID uuid.UUID) {
	h.mu.Lock()
	client := h.clients[recipientID]
	h.mu.Unlock()

	if client == nil {
		return
	}

	select {
	case client.signals <- struct{}{}:
	default:
	}
}

// Connected reports whether the recipient currently has a live connection.
func (h *Hub) Connected(recipientID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients[recipientID] != nil
}
