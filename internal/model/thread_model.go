package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Thread struct {
	ChatId       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title        *string        `gorm:"type:text"`
	Diagram      string         `gorm:"type:text;not null;default:''"`
	SchemaSql    string         `gorm:"type:text;not null;default:''"`
	Conversation datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (Thread) TableName() string {
	return "threads"
}
