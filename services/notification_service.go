package services

import (
	"log"
	"time"

	"tutorhub/models"
	"tutorhub/websocket"
)

// HubNotifier delivers notifications over the websocket hub. Delivery is
// fire-and-forget; a user with no open connection simply misses the push.
type HubNotifier struct {
	hub *websocket.Hub
}

// NewHubNotifier creates a notifier backed by hub.
func NewHubNotifier(hub *websocket.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// Notify broadcasts an event targeted at userID.
func (n *HubNotifier) Notify(userID, eventType string, payload map[string]interface{}) {
	if n.hub == nil {
		return
	}

	event := models.ReviewEvent{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	if subject, ok := payload["subjectId"].(string); ok {
		event.SubjectID = subject
	}
	if score, ok := payload["score"].(int); ok {
		event.Score = score
	}

	n.hub.Broadcast(event)
	log.Printf("Notified %s: %s", userID, eventType)
}
