package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/repository"
	"github.com/sangkips/beatlicense-api/internal/logging"
)

// SettingsService handles report settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	logger       zerolog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logging.Component(logger, "SettingsService"),
	}
}

// ReportSettings are the settings that shape report exports
type ReportSettings struct {
	DefaultCoverImage string     `json:"default_cover_image"`
	UpdatedBy         string     `json:"updated_by,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// GetReportSettings returns the current report settings
func (s *SettingsService) GetReportSettings(ctx context.Context) (*ReportSettings, error) {
	setting, err := s.settingsRepo.Get(ctx, entity.SettingDefaultCoverImage)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return &ReportSettings{}, nil
	}
	updatedAt := setting.UpdatedAt
	return &ReportSettings{
		DefaultCoverImage: setting.Value,
		UpdatedBy:         setting.UpdatedBy,
		UpdatedAt:         &updatedAt,
	}, nil
}

// DefaultCover returns the stored default cover image id, or "" when unset
func (s *SettingsService) DefaultCover(ctx context.Context) (string, error) {
	settings, err := s.GetReportSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.DefaultCoverImage, nil
}

// SetDefaultCover stores the default cover image id. An empty id clears it.
func (s *SettingsService) SetDefaultCover(ctx context.Context, cover, updatedBy string) (*ReportSettings, error) {
	cover = strings.TrimSpace(cover)
	setting := &entity.AppSetting{
		Key:       entity.SettingDefaultCoverImage,
		Value:     cover,
		UpdatedBy: updatedBy,
	}
	if err := s.settingsRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("cover", cover).
		Str("updated_by", updatedBy).
		Msg("Default report cover updated")

	return s.GetReportSettings(ctx)
}
