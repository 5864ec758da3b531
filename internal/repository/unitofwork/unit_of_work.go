package unitofwork

import (
	"context"

	"ai-schemadesign-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ThreadRepository() contract.ThreadRepository
	ThreadEmbeddingRepository() contract.ThreadEmbeddingRepository
	CredentialRepository() contract.CredentialRepository
}
