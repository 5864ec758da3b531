package store

import (
	"errors"

	"ai-schemadesign-be/internal/entity"

	"github.com/google/uuid"
)

// ErrTurnInProgress is returned when a send arrives while a previous turn
// for the same session is still running.
var ErrTurnInProgress = errors.New("a turn is already in progress for this session")

// ChatRefNew is the sentinel the UI sends for a conversation that has not
// been persisted yet.
const ChatRefNew = "new"

// ChatRef is a resolved chat identifier. Unsaved means no thread record
// exists yet; Id is already final and becomes permanent on the first
// successful send.
type ChatRef struct {
	Id      uuid.UUID
	Unsaved bool
}

func (r ChatRef) String() string {
	return r.Id.String()
}

// ResolveChatRef turns the raw identifier coming from the UI into a ChatRef,
// minting a fresh id when the "new" sentinel is used.
func ResolveChatRef(raw string) (ChatRef, error) {
	if raw == ChatRefNew {
		return ChatRef{Id: uuid.New(), Unsaved: true}, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ChatRef{}, err
	}
	return ChatRef{Id: id}, nil
}

// Dialects the code generator knows how to target.
const (
	DialectSQL   = "sql"
	DialectMongo = "mongo"
)

// DefaultDialect is always present in Session.Schemas, even as an empty
// script, and is the one persisted on the thread record.
const DefaultDialect = DialectSQL

// IsSupportedDialect reports whether the generator has a prompt contract
// for the given dialect.
func IsSupportedDialect(dialect string) bool {
	switch dialect {
	case DialectSQL, DialectMongo:
		return true
	}
	return false
}

// Session is the active conversation state kept in memory between turns.
// Durability lives in the thread record; a session can always be rebuilt
// from it.
type Session struct {
	ChatId  string                       `json:"chat_id"` // "new" until the first successful send
	History []entity.ConversationMessage `json:"history"`
	Diagram string                       `json:"diagram"`
	Schemas map[string]string            `json:"schemas"`
	Busy    bool                         `json:"busy"`
}

// NewSession returns an empty session for the given chat id with the
// default dialect seeded.
func NewSession(chatId string) *Session {
	return &Session{
		ChatId:  chatId,
		History: []entity.ConversationMessage{},
		Schemas: map[string]string{DefaultDialect: ""},
	}
}

// Append adds a message to the in-memory history.
func (s *Session) Append(msg entity.ConversationMessage) {
	s.History = append(s.History, msg)
}
