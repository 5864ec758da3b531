package contract

import (
	"context"

	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ThreadRepository interface {
	// Create inserts a thread. The chat id is chosen by the caller and is
	// permanent.
	Create(ctx context.Context, thread *entity.Thread) error
	// Update is a whole-record replacement keyed by chat id, which keeps
	// reconcile idempotent by construction.
	Update(ctx context.Context, thread *entity.Thread) error
	Delete(ctx context.Context, chatId uuid.UUID) error
	// FindOne returns (nil, nil) when no record matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
