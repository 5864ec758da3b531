package events

import (
	"time"

	"github.com/google/uuid"
)

// Thread lifecycle event codes.
const (
	TypeThreadCreated = "THREAD_CREATED"
	TypeThreadUpdated = "THREAD_UPDATED"
	TypeThreadDeleted = "THREAD_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "THREAD_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic Event implementation used across the bus.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewThreadEvent builds a lifecycle event for the given thread. Title may be
// nil for threads the indexer has not titled yet.
func NewThreadEvent(eventType string, chatId uuid.UUID, title *string) BaseEvent {
	data := map[string]interface{}{
		"chat_id": chatId.String(),
	}
	if title != nil {
		data["title"] = *title
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
