package events

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	streamKey    = "tutorhub:events"
	maxStreamLen = 10000
)

// Bus publishes domain events to a Redis Stream. Emission is fire-and-forget:
// a publish failure is logged and never propagated to the operation that
// triggered the event.
type Bus struct {
	rdb *redis.Client
	ctx context.Context
}

// NewBus creates an event bus on rdb. A nil client yields a bus whose emits
// are silently dropped, so callers never have to branch on wiring.
func NewBus(rdb *redis.Client) *Bus {
	return &Bus{rdb: rdb, ctx: context.Background()}
}

// Emit publishes an event with the given type and payload.
func (b *Bus) Emit(eventType string, payload interface{}) {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("Failed to build %s event: %v", eventType, err)
		return
	}
	if err := b.publish(event); err != nil {
		log.Printf("Failed to emit %s event: %v", eventType, err)
	}
}

// publish appends the event to the stream with MAXLEN to bound history.
func (b *Bus) publish(event *Event) error {
	if b == nil || b.rdb == nil {
		return nil
	}

	eventData, err := MarshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = b.rdb.XAdd(b.ctx, &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"data": eventData,
		},
		MaxLen: maxStreamLen,
		Approx: true, // Use ~ for approximate trimming
	}).Result()

	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
