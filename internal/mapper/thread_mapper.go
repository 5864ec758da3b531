package mapper

import (
	"encoding/json"

	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ThreadMapper struct{}

func NewThreadMapper() *ThreadMapper {
	return &ThreadMapper{}
}

func (m *ThreadMapper) ThreadToEntity(t *model.Thread) *entity.Thread {
	if t == nil {
		return nil
	}

	conversation := []entity.ConversationMessage{}
	if len(t.Conversation) > 0 {
		// A row with malformed conversation JSON still hydrates the rest of
		// the thread; the conversation just comes back empty.
		_ = json.Unmarshal(t.Conversation, &conversation)
	}

	return &entity.Thread{
		ChatId:       t.ChatId,
		Title:        t.Title,
		Diagram:      t.Diagram,
		SchemaSql:    t.SchemaSql,
		Conversation: conversation,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *ThreadMapper) ThreadToModel(t *entity.Thread) (*model.Thread, error) {
	if t == nil {
		return nil, nil
	}

	conversation := t.Conversation
	if conversation == nil {
		conversation = []entity.ConversationMessage{}
	}
	raw, err := json.Marshal(conversation)
	if err != nil {
		return nil, err
	}

	return &model.Thread{
		ChatId:       t.ChatId,
		Title:        t.Title,
		Diagram:      t.Diagram,
		SchemaSql:    t.SchemaSql,
		Conversation: raw,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}, nil
}

func (m *ThreadMapper) ThreadEmbeddingToEntity(e *model.ThreadEmbedding) *entity.ThreadEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ThreadEmbedding{
		Id:             e.Id,
		ChatId:         e.ChatId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *ThreadMapper) ThreadEmbeddingToModel(e *entity.ThreadEmbedding) *model.ThreadEmbedding {
	if e == nil {
		return nil
	}
	return &model.ThreadEmbedding{
		Id:             e.Id,
		ChatId:         e.ChatId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
