package events

import (
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeHub struct {
	received []*Event
}

func (f *fakeHub) BroadcastEvent(event *Event) {
	f.received = append(f.received, event)
}

func TestProcessMessageForwardsToHub(t *testing.T) {
	hub := &fakeHub{}
	sc := &StreamConsumer{hub: hub}

	event, err := NewEvent(RatingSubmitted, RatingSubmittedPayload{SubjectID: "tutor-1", SubmissionID: "abc"})
	if err != nil {
		t.Fatalf("NewEvent failed: %v", err)
	}
	data, err := MarshalEvent(event)
	if err != nil {
		t.Fatalf("MarshalEvent failed: %v", err)
	}

	msg := redis.XMessage{ID: "1-0", Values: map[string]interface{}{"data": data}}
	if err := sc.processMessage(msg); err != nil {
		t.Fatalf("processMessage failed: %v", err)
	}
	if len(hub.received) != 1 {
		t.Fatalf("Expected 1 forwarded event, got %d", len(hub.received))
	}
	if hub.received[0].Type != RatingSubmitted {
		t.Errorf("Expected %s event, got %s", RatingSubmitted, hub.received[0].Type)
	}
}

func TestProcessMessageRejectsMalformed(t *testing.T) {
	hub := &fakeHub{}
	sc := &StreamConsumer{hub: hub}

	// A message that cannot be decoded errors once and is never broadcast;
	// the consume loop acks it anyway so it is not redelivered forever.
	cases := []redis.XMessage{
		{ID: "1-0", Values: map[string]interface{}{}},
		{ID: "2-0", Values: map[string]interface{}{"data": "not json"}},
	}
	for _, msg := range cases {
		if err := sc.processMessage(msg); err == nil {
			t.Errorf("Expected error for message %s", msg.ID)
		}
	}
	if len(hub.received) != 0 {
		t.Errorf("Malformed messages must not be broadcast, got %d", len(hub.received))
	}
}
