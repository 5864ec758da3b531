package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationMessage is a single chat turn stored on a thread. Messages are
// immutable once appended; ordering is append order. Id uniqueness matters
// for idempotent rendering on the client, not for server logic.
type ConversationMessage struct {
	Id        string `json:"id"`
	Role      string `json:"role"` // "user" | "model"
	Text      string `json:"message"`
	Diagram   string `json:"diagram,omitempty"` // serialized diagram document, if this turn carries one
	Timestamp int64  `json:"timestamp"`         // unix millis
}

// Thread is a persisted conversation together with its current diagram and
// generated SQL script, keyed by a stable chat id.
type Thread struct {
	ChatId       uuid.UUID
	Title        *string
	Diagram      string
	SchemaSql    string
	Conversation []ConversationMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
