package implementation

import (
	"context"
	"errors"

	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/mapper"
	"ai-schemadesign-be/internal/model"
	"ai-schemadesign-be/internal/repository/contract"
	"ai-schemadesign-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ThreadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ThreadMapper
}

func NewThreadRepository(db *gorm.DB) contract.ThreadRepository {
	return &ThreadRepositoryImpl{
		db:     db,
		mapper: mapper.NewThreadMapper(),
	}
}

func (r *ThreadRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ThreadRepositoryImpl) Create(ctx context.Context, thread *entity.Thread) error {
	m, err := r.mapper.ThreadToModel(thread)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*thread = *r.mapper.ThreadToEntity(m)
	return nil
}

func (r *ThreadRepositoryImpl) Update(ctx context.Context, thread *entity.Thread) error {
	m, err := r.mapper.ThreadToModel(thread)
	if err != nil {
		return err
	}
	// Save on a model with a primary key does a full-row upsert, which is
	// exactly the whole-record replacement the reconcile step wants.
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*thread = *r.mapper.ThreadToEntity(m)
	return nil
}

func (r *ThreadRepositoryImpl) Delete(ctx context.Context, chatId uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Thread{}, "chat_id = ?", chatId).Error
}

func (r *ThreadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	var m model.Thread
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ThreadToEntity(&m), nil
}

func (r *ThreadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error) {
	var models []*model.Thread
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Thread, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ThreadToEntity(m)
	}
	return entities, nil
}

func (r *ThreadRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Thread{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
