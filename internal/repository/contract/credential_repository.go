package contract

import (
	"context"

	"ai-schemadesign-be/internal/model"
)

// CredentialRepository stores named secrets. Values arrive already sealed;
// encryption lives in the credential service so the repository stays a dumb
// byte store.
type CredentialRepository interface {
	Upsert(ctx context.Context, credential *model.Credential) error
	// FindByName returns (nil, nil) when the secret does not exist.
	FindByName(ctx context.Context, name string) (*model.Credential, error)
	Delete(ctx context.Context, name string) error
}
