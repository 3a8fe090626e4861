package repository

import (
	"context"

	"github.com/sangkips/beatlicense-api/internal/domain/entity"
)

// SettingsRepository defines the interface for application settings
type SettingsRepository interface {
	// Get returns nil, nil when the key has never been set
	Get(ctx context.Context, key string) (*entity.AppSetting, error)
	Upsert(ctx context.Context, setting *entity.AppSetting) error
}
