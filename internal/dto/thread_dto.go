package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ChatId string `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type ConversationMessageDTO struct {
	Id        string `json:"id"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	Diagram   string `json:"diagram,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SendMessageResponse carries the outcome of one turn. ChatId is only set
// when the turn reached persistence, so a failed first send never hands the
// UI an id it cannot load.
type SendMessageResponse struct {
	ChatId  *uuid.UUID               `json:"chat_id,omitempty"`
	Reply   *ConversationMessageDTO  `json:"reply"`
	Diagram string                   `json:"diagram"`
	Schemas map[string]string        `json:"schemas"`
	History []ConversationMessageDTO `json:"history"`
}

// ThreadViewResponse is the hydrated state for one conversation. ChatId is a
// string because the "new" placeholder view has no persisted id yet.
type ThreadViewResponse struct {
	ChatId  string                   `json:"chat_id"`
	Title   *string                  `json:"title"`
	Diagram string                   `json:"diagram"`
	Schemas map[string]string        `json:"schemas"`
	History []ConversationMessageDTO `json:"history"`
}

type ThreadSummaryResponse struct {
	ChatId    uuid.UUID `json:"chat_id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublishIndexThreadMessage is the payload handed to the background indexer
// after a successful turn.
type PublishIndexThreadMessage struct {
	ChatId    uuid.UUID `json:"chat_id"`
	Utterance string    `json:"utterance"`
}

type SearchThreadsResponse struct {
	ChatId     uuid.UUID `json:"chat_id"`
	Title      *string   `json:"title"`
	Similarity float32   `json:"similarity"`
}
