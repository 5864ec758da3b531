package unitofwork

import (
	"context"
	"fmt"

	"ai-schemadesign-be/internal/repository/contract"
	"ai-schemadesign-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // the active transaction, nil when not in one
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ThreadRepository() contract.ThreadRepository {
	return implementation.NewThreadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ThreadEmbeddingRepository() contract.ThreadEmbeddingRepository {
	return implementation.NewThreadEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CredentialRepository() contract.CredentialRepository {
	return implementation.NewCredentialRepository(u.getDB())
}
