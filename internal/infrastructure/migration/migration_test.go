package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tracker/internal/infrastructure/database"
	"tracker/internal/shared/config"
	"tracker/internal/shared/logger"
)

func openTestDB(t *testing.T) (*gorm.DB, *config.DatabaseConfig) {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "migrate.db"),
	}
	db, err := database.Open(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db, cfg
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	ctx := context.Background()
	db, cfg := openTestDB(t)

	m, err := NewManager(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, StrategyGoose, m.GetStrategy().GetName())

	require.NoError(t, m.Migrate(ctx, db))
	v, err := m.Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	for _, table := range []string{"users", "tickets", "ticket_comments", "ticket_attachments", "activity_log"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// idempotent
	require.NoError(t, m.Migrate(ctx, db))

	pending, err := m.GetStrategy().(*GooseStrategy).Pending(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, m.Rollback(ctx, db, 1))
	v, err = m.Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	assert.False(t, db.Migrator().HasTable("tickets"))
}

func TestGooseSchema_TicketNumberIsUnique(t *testing.T) {
	ctx := context.Background()
	db, cfg := openTestDB(t)
	m, err := NewManager(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, m.Migrate(ctx, db))

	insert := "INSERT INTO tickets (ticket_number, title, created_by, created_at, updated_at) VALUES (?, ?, 1, 0, 0)"
	require.NoError(t, db.Exec(insert, "TKT-2026-0001", "a").Error)
	assert.Error(t, db.Exec(insert, "TKT-2026-0001", "b").Error)
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	ctx := context.Background()
	db, cfg := openTestDB(t)
	cfg.MigrationStrategy = "auto"

	m, err := NewManager(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, m.Migrate(ctx, db))
	assert.True(t, db.Migrator().HasTable("activity_log"))

	assert.Error(t, m.Rollback(ctx, db, 1))
	v, err := m.Version(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestNewManager_Errors(t *testing.T) {
	log := logger.NewNopLogger()

	_, err := NewManager(&config.DatabaseConfig{Driver: config.DriverSQLite, MigrationStrategy: "flyway"}, log)
	assert.Error(t, err)

	_, err = NewManager(&config.DatabaseConfig{Driver: config.DriverSQLite, MigrationStrategy: StrategyGolangMigrate}, log)
	assert.Error(t, err, "golang-migrate is mysql only")

	m, err := NewManager(&config.DatabaseConfig{Driver: config.DriverMySQL, MigrationStrategy: "golang-migrate"}, log)
	require.NoError(t, err)
	assert.Equal(t, StrategyGolangMigrate, m.GetStrategy().GetName())

	m, err = NewManager(&config.DatabaseConfig{Driver: config.DriverPostgres}, log)
	require.NoError(t, err)
	assert.Equal(t, StrategyGoose, m.GetStrategy().GetName())
}

func TestManager_RollbackRejectsNonPositiveSteps(t *testing.T) {
	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy(logger.NewNopLogger()), logger.NewNopLogger())
	assert.Error(t, m.Rollback(context.Background(), nil, 0))
}
