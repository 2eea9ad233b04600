package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names emitted by this service.
const (
	RatingSubmitted      = "rating-submitted"
	RequestStatusChanged = "request-status-changed"
)

// Event is a domain event published to the Redis Stream. Consumers treat
// delivery as best-effort, at-least-once.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// RatingSubmittedPayload is carried on rating-submitted events.
type RatingSubmittedPayload struct {
	SubjectID    string `json:"subjectId"`
	SubmissionID string `json:"submissionId"`
}

// RequestStatusPayload is carried on request-status-changed events.
type RequestStatusPayload struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

// NewEvent creates a new event with a fresh id and timestamp.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().Unix(),
	}, nil
}

// MarshalEvent marshals an event to a JSON string for the Redis Stream.
func MarshalEvent(event *Event) (string, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalEvent unmarshals a JSON string to an Event.
func UnmarshalEvent(data string) (*Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}
	return &event, nil
}
