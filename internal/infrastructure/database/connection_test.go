package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/shared/config"
	"tracker/internal/shared/logger"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "data", "tracker.db"),
	}

	db, err := Open(cfg, logger.NewNopLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	health := NewHealthChecker(db)
	require.NoError(t, health.Ping(context.Background()))

	require.NoError(t, Close(db))
	assert.Error(t, sqlDB.Ping())
	assert.Error(t, health.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, logger.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
