package database

import (
	"bytes"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T, l zerolog.Logger, debug bool) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   NewGormLogger(l, debug),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestAutoMigrateAndSeed(t *testing.T) {
	db := openSQLite(t, zerolog.Nop(), false)
	require.NoError(t, AutoMigrate(db, zerolog.Nop()))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	require.NoError(t, SeedDefaults(db, "covers/launch.png", zerolog.Nop()))
	// an existing default is kept
	require.NoError(t, SeedDefaults(db, "covers/other.png", zerolog.Nop()))
	require.NoError(t, SeedDefaults(db, "", zerolog.Nop()))

	var setting entity.AppSetting
	require.NoError(t, db.Where(&entity.AppSetting{Key: entity.SettingDefaultCoverImage}).First(&setting).Error)
	assert.Equal(t, "covers/launch.png", setting.Value)
	assert.Equal(t, "system", setting.UpdatedBy)
}

func TestGormLogger_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	db := openSQLite(t, zerolog.New(&buf), true)

	require.NoError(t, db.Exec("SELECT 1").Error)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), "SELECT 1")
}
