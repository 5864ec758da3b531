package implementation

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-schemadesign-be/internal/model"
	"ai-schemadesign-be/internal/repository/contract"
)

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) contract.CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Upsert(ctx context.Context, credential *model.Credential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(credential).Error
}

func (r *credentialRepository) FindByName(ctx context.Context, name string) (*model.Credential, error) {
	var m model.Credential
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *credentialRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Credential{}).Error
}
