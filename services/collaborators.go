package services

import "context"

// RecordStore is the persistence collaborator. db.Store implements it on
// MongoDB; tests substitute an in-memory fake.
type RecordStore interface {
	CreateRecord(ctx context.Context, collection string, data interface{}) (string, error)
	GetRecord(ctx context.Context, collection, id string, out interface{}) error
	QueryByField(ctx context.Context, collection, field string, value interface{}, out interface{}) error
	UpsertByField(ctx context.Context, collection, field string, value, data interface{}) error
	UpdateRecord(ctx context.Context, collection, field string, value interface{}, patch interface{}) error
	FindOneByFields(ctx context.Context, collection string, filter map[string]interface{}, out interface{}) error
}

// FallbackCache is the local durable cache collaborator, read only when the
// record store is unreachable and written through on every recompute.
type FallbackCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) bool
}

// EventBus is the best-effort domain event collaborator.
type EventBus interface {
	Emit(eventType string, payload interface{})
}

// Notifier is the fire-and-forget notification collaborator. Failures are
// logged by implementations and never propagated.
type Notifier interface {
	Notify(userID, eventType string, payload map[string]interface{})
}
