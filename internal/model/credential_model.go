package model

import "time"

type Credential struct {
	Name      string    `gorm:"type:text;primaryKey"`
	Value     []byte    `gorm:"type:bytea;not null"` // chacha20poly1305 sealed, nonce-prefixed
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}
