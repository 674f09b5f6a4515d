package migration

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tracker/internal/shared/config"
	"tracker/internal/shared/logger"
)

// Manager runs the configured migration strategy
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy named in cfg.MigrationStrategy, defaulting to goose.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	var (
		strategy Strategy
		err      error
	)
	switch strings.ToLower(cfg.MigrationStrategy) {
	case StrategyGoose, "":
		strategy, err = NewGooseStrategy(cfg.Driver, log)
	case StrategyGolangMigrate, "golang-migrate":
		strategy, err = NewGolangMigrateStrategy(cfg, log)
	case StrategyAutoMigrate, "auto":
		strategy = NewGormAutoMigrateStrategy(log)
	default:
		err = fmt.Errorf("unknown migration strategy %q", cfg.MigrationStrategy)
	}
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) Rollback(ctx context.Context, db *gorm.DB, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return m.strategy.Rollback(ctx, db, steps)
}

func (m *Manager) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	return m.strategy.Version(ctx, db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
