package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Used by tests and throwaway databases; it has no version history.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.gorm")}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	all := models.All()
	if err := db.WithContext(ctx).AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	s.logger.Infow("auto migration completed", "models", len(all))
	return nil
}

func (s *GormAutoMigrateStrategy) Rollback(ctx context.Context, db *gorm.DB, steps int) error {
	return fmt.Errorf("%s does not support rollback", StrategyAutoMigrate)
}

func (s *GormAutoMigrateStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	return 0, nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return StrategyAutoMigrate
}
