package entity

import (
	"time"

	"github.com/google/uuid"
)

// ThreadEmbedding is the vector index entry for one thread, built from its
// title, first user utterance and diagram entity names.
type ThreadEmbedding struct {
	Id             uuid.UUID
	ChatId         uuid.UUID
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ThreadSearchResult pairs a thread with its similarity score.
type ThreadSearchResult struct {
	ChatId     uuid.UUID
	Title      *string
	Similarity float32
}
