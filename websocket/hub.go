package websocket

import (
	"log"
	"sync"

	"tutorhub/internal/events"
	"tutorhub/models"

	"github.com/gorilla/websocket"
)

// Client represents a client connected for review/reputation updates
type Client struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (c *Client) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub fans review events out to all connected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Register adds a client for review updates
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	log.Printf("Review client registered. Total clients: %d", len(h.clients))
}

// Unregister removes a client and closes its connection
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	client.Conn.Close()
	log.Printf("Review client unregistered. Total clients: %d", len(h.clients))
}

// Broadcast sends a review event to all connected clients.
func (h *Hub) Broadcast(event models.ReviewEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	message := map[string]interface{}{
		"type":      event.Type,
		"timestamp": event.Timestamp,
	}
	if event.SubjectID != "" {
		message["subjectId"] = event.SubjectID
	}
	if event.UserID != "" {
		message["userId"] = event.UserID
	}
	if event.BadgeName != "" {
		message["badgeName"] = event.BadgeName
	}
	if event.Tier != "" {
		message["tier"] = event.Tier
	}

	for client := range h.clients {
		if err := client.SafeWriteJSON(message); err != nil {
			log.Printf("Error broadcasting review event to client: %v", err)
			// Remove client if write fails
			go h.Unregister(client)
		}
	}
}

// BroadcastEvent forwards a consumed stream event to all clients. This is the
// events.Hub hook used by the stream consumer.
func (h *Hub) BroadcastEvent(event *events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	message := map[string]interface{}{
		"type":      event.Type,
		"payload":   event.Payload,
		"timestamp": event.Timestamp,
	}

	for client := range h.clients {
		if err := client.SafeWriteJSON(message); err != nil {
			log.Printf("Error forwarding event to client: %v", err)
			go h.Unregister(client)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
