package events

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const groupName = "tutorhub:ui-refresh"

// Hub receives consumed events for fan-out to connected clients.
type Hub interface {
	BroadcastEvent(event *Event)
}

// StreamConsumer reads the event stream through a consumer group and forwards
// events to the websocket hub so UI clients can refresh.
type StreamConsumer struct {
	rdb          *redis.Client
	ctx          context.Context
	consumerName string
	hub          Hub
}

// NewStreamConsumer creates a consumer bound to hub. Returns nil when Redis
// is not wired; callers skip consumption in that case.
func NewStreamConsumer(rdb *redis.Client, hub Hub) *StreamConsumer {
	if rdb == nil {
		return nil
	}

	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("consumer-%s-%d", hostname, os.Getpid())

	return &StreamConsumer{
		rdb:          rdb,
		ctx:          context.Background(),
		consumerName: consumerName,
		hub:          hub,
	}
}

// Start creates the consumer group and begins consuming in a goroutine.
func (sc *StreamConsumer) Start() error {
	if sc == nil || sc.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	err := sc.rdb.XGroupCreateMkStream(sc.ctx, streamKey, groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		// Continue anyway, group might already exist
	}

	go sc.consumeLoop()
	return nil
}

// consumeLoop continuously reads from the stream and forwards to the hub.
func (sc *StreamConsumer) consumeLoop() {
	for {
		streams, err := sc.rdb.XReadGroup(sc.ctx, &redis.XReadGroupArgs{
			Group:    groupName,
			Consumer: sc.consumerName,
			Streams:  []string{streamKey, ">"},
			Count:    100,
			Block:    time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				// Ack after one attempt either way: a message that fails to
				// decode will fail on every redelivery, so drop it with a log
				// instead of retrying it forever.
				if err := sc.processMessage(message); err != nil {
					log.Printf("Dropping undeliverable event %s: %v", message.ID, err)
				}
				sc.rdb.XAck(sc.ctx, streamKey, groupName, message.ID)
			}
		}

		sc.reclaimPending()
	}
}

// processMessage decodes a stream message and forwards it to the hub.
func (sc *StreamConsumer) processMessage(message redis.XMessage) error {
	eventData, ok := message.Values["data"].(string)
	if !ok {
		return fmt.Errorf("invalid message format: missing data field")
	}

	event, err := UnmarshalEvent(eventData)
	if err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	sc.hub.BroadcastEvent(event)
	return nil
}

// reclaimPending claims messages another consumer left unACKed for too long.
func (sc *StreamConsumer) reclaimPending() {
	pending, err := sc.rdb.XPendingExt(sc.ctx, &redis.XPendingExtArgs{
		Stream: streamKey,
		Group:  groupName,
		Start:  "-",
		End:    "+",
		Count:  100,
	}).Result()

	if err != nil {
		return
	}

	for _, p := range pending {
		if p.Idle <= 30*time.Second {
			continue
		}
		claimed, err := sc.rdb.XClaim(sc.ctx, &redis.XClaimArgs{
			Stream:   streamKey,
			Group:    groupName,
			Consumer: sc.consumerName,
			MinIdle:  30 * time.Second,
			Messages: []string{p.ID},
		}).Result()

		if err == nil && len(claimed) > 0 {
			for _, msg := range claimed {
				if err := sc.processMessage(msg); err != nil {
					log.Printf("Dropping undeliverable event %s: %v", msg.ID, err)
				}
				sc.rdb.XAck(sc.ctx, streamKey, groupName, msg.ID)
			}
		}
	}
}
