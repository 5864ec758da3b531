package dto

import "time"

type StoreApiKeyRequest struct {
	ApiKey string `json:"api_key" validate:"required,min=10"`
}

type ApiKeyStatusResponse struct {
	Configured bool       `json:"configured"`
	Source     string     `json:"source,omitempty"` // "database" | "environment"
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
