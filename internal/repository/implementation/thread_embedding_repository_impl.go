package implementation

import (
	"context"

	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/mapper"
	"ai-schemadesign-be/internal/model"
	"ai-schemadesign-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThreadEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ThreadMapper
}

func NewThreadEmbeddingRepository(db *gorm.DB) contract.ThreadEmbeddingRepository {
	return &ThreadEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewThreadMapper(),
	}
}

func (r *ThreadEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ThreadEmbedding) error {
	m := r.mapper.ThreadEmbeddingToModel(embedding)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.ThreadEmbeddingToEntity(m)
	return nil
}

func (r *ThreadEmbeddingRepositoryImpl) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ThreadEmbedding{}, "chat_id = ?", chatId).Error
}

func (r *ThreadEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, queryVector []float32, limit int) ([]*entity.ThreadSearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	queryVec := pgvector.NewVector(queryVector)

	// Cosine distance in pgvector is 1 - cosine_similarity.
	var rows []struct {
		ChatId     uuid.UUID
		Title      *string
		Similarity float32
	}
	err := r.db.WithContext(ctx).
		Table("thread_embeddings").
		Select("thread_embeddings.chat_id, threads.title, 1 - (embedding_value <=> ?) as similarity", queryVec).
		Joins("JOIN threads ON threads.chat_id = thread_embeddings.chat_id").
		Clauses(clause.OrderBy{Expression: clause.Expr{SQL: "embedding_value <=> ?", Vars: []interface{}{queryVec}}}).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*entity.ThreadSearchResult, len(rows))
	for i, row := range rows {
		results[i] = &entity.ThreadSearchResult{
			ChatId:     row.ChatId,
			Title:      row.Title,
			Similarity: row.Similarity,
		}
	}
	return results, nil
}
