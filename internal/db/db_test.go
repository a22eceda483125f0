package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"boardapi/internal/config"
	"boardapi/internal/model"
)

func sqliteConfig() config.DatabaseConfig {
	return config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:?_foreign_keys=on"}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestMigrate_CreatesTables(t *testing.T) {
	gdb, err := Open(sqliteConfig())
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb, false, zap.NewNop()))

	for _, m := range model.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
	assert.True(t, gdb.Migrator().HasIndex(&model.SavedImage{}, "idx_saved_images_url_owner"))
}

func TestMigrate_ResetDropsRows(t *testing.T) {
	gdb, err := Open(sqliteConfig())
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb, false, zap.NewNop()))

	require.NoError(t, gdb.Create(&model.Account{Name: "Ann", Email: "ann@x.com", PasswordHash: "h"}).Error)

	require.NoError(t, Migrate(gdb, true, zap.NewNop()))

	var count int64
	require.NoError(t, gdb.Model(&model.Account{}).Count(&count).Error)
	assert.Zero(t, count)
}
