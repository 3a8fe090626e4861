package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/config"
	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/logging"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// gormWriter sends gorm's log lines through zerolog
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Info().Msgf(format, args...)
}

// NewGormLogger builds a gorm logger backed by zerolog. In debug mode every
// statement is logged; otherwise only slow queries and errors.
func NewGormLogger(l zerolog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(gormWriter{logger: logging.Component(l, "gorm")}, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, gormLogger logger.Interface, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// report generation opens six queries at once per request
	sqlDB.SetMaxIdleConns(12)
	sqlDB.SetMaxOpenConns(60)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Connected to PostgreSQL")
	return db, nil
}

// Models lists every table the service reads or writes
func Models() []interface{} {
	return []interface{}{
		&entity.Profile{},
		&entity.Track{},
		&entity.TrackLicense{},
		&entity.SyncProposal{},
		&entity.CustomSyncRequest{},
		&entity.WhiteLabelClient{},
		&entity.WhiteLabelPayment{},
		&entity.UserSubscription{},
		&entity.AppSetting{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("Running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("Database migrations completed")
	return nil
}

// SeedDefaults stores defaultCover as the default report cover unless a
// default has already been set
func SeedDefaults(db *gorm.DB, defaultCover string, log zerolog.Logger) error {
	if defaultCover == "" {
		return nil
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entity.AppSetting{
		Key:       entity.SettingDefaultCoverImage,
		Value:     defaultCover,
		UpdatedBy: "system",
	})
	if result.Error != nil {
		return fmt.Errorf("failed to seed default cover: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Info().Str("cover", defaultCover).Msg("Seeded default report cover")
	}
	return nil
}
