package contract

import (
	"context"

	"ai-schemadesign-be/internal/entity"

	"github.com/google/uuid"
)

type ThreadEmbeddingRepository interface {
	// Upsert replaces the embedding for a chat id (one vector per thread).
	Upsert(ctx context.Context, embedding *entity.ThreadEmbedding) error
	DeleteByChatId(ctx context.Context, chatId uuid.UUID) error
	// SearchSimilar returns threads ordered by cosine similarity to the
	// query vector, best first.
	SearchSimilar(ctx context.Context, queryVector []float32, limit int) ([]*entity.ThreadSearchResult, error)
}
