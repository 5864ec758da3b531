package service

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/internal/dto"
	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/model"
	"ai-schemadesign-be/internal/repository/unitofwork"
)

type ICredentialService interface {
	StoreApiKey(ctx context.Context, req *dto.StoreApiKeyRequest) error
	// GetApiKey resolves the Gemini key, preferring the stored credential and
	// falling back to the GOOGLE_GEMINI_API_KEY environment variable. Returns
	// constant.ErrCredentialNotFound when neither is present.
	GetApiKey(ctx context.Context) (string, error)
	ApiKeyStatus(ctx context.Context) (*dto.ApiKeyStatusResponse, error)
	DeleteApiKey(ctx context.Context) error
}

type credentialService struct {
	uowFactory unitofwork.RepositoryFactory
	aead       cipher.AEAD
}

func NewCredentialService(uowFactory unitofwork.RepositoryFactory, encryptionSecret string) ICredentialService {
	// Stretch whatever the operator configured into a proper 256 bit key.
	key := sha256.Sum256([]byte(encryptionSecret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		// NewX only fails on a wrong key size, which the hash rules out.
		panic(err)
	}
	return &credentialService{
		uowFactory: uowFactory,
		aead:       aead,
	}
}

func (s *credentialService) seal(plaintext string) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	// Nonce travels as a prefix of the stored blob.
	return s.aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

func (s *credentialService) open(blob []byte) (string, error) {
	if len(blob) < s.aead.NonceSize() {
		return "", fmt.Errorf("stored credential blob too short")
	}
	nonce, ciphertext := blob[:s.aead.NonceSize()], blob[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt stored credential: %w", err)
	}
	return string(plaintext), nil
}

func (s *credentialService) StoreApiKey(ctx context.Context, req *dto.StoreApiKeyRequest) error {
	sealed, err := s.seal(req.ApiKey)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CredentialRepository().Upsert(ctx, &model.Credential{
		Name:  entity.CredentialGeminiApiKey,
		Value: sealed,
	})
}

func (s *credentialService) GetApiKey(ctx context.Context) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.CredentialRepository().FindByName(ctx, entity.CredentialGeminiApiKey)
	if err != nil {
		return "", err
	}
	if stored != nil {
		return s.open(stored.Value)
	}

	if key := os.Getenv("GOOGLE_GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", constant.ErrCredentialNotFound
}

func (s *credentialService) ApiKeyStatus(ctx context.Context) (*dto.ApiKeyStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.CredentialRepository().FindByName(ctx, entity.CredentialGeminiApiKey)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		updatedAt := stored.UpdatedAt
		return &dto.ApiKeyStatusResponse{
			Configured: true,
			Source:     "database",
			UpdatedAt:  &updatedAt,
		}, nil
	}
	if os.Getenv("GOOGLE_GEMINI_API_KEY") != "" {
		return &dto.ApiKeyStatusResponse{Configured: true, Source: "environment"}, nil
	}
	return &dto.ApiKeyStatusResponse{Configured: false}, nil
}

func (s *credentialService) DeleteApiKey(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CredentialRepository().Delete(ctx, entity.CredentialGeminiApiKey)
}
