package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"tracker/internal/shared/config"
	"tracker/internal/shared/logger"
)

const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"
	StrategyAutoMigrate   = "gorm_auto_migrate"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(ctx context.Context, db *gorm.DB) error
	// Rollback reverts the last steps migrations
	Rollback(ctx context.Context, db *gorm.DB, steps int) error
	// Version reports the applied schema version, zero when none
	Version(ctx context.Context, db *gorm.DB) (int64, error)
	// GetName returns the strategy name
	GetName() string
}

// GolangMigrateStrategy applies the embedded MySQL scripts with golang-migrate.
// It opens its own connection from the DSN so multi-statement scripts are allowed.
type GolangMigrateStrategy struct {
	dsn    string
	logger logger.Interface
}

// NewGolangMigrateStrategy creates a new golang-migrate strategy
func NewGolangMigrateStrategy(cfg *config.DatabaseConfig, log logger.Interface) (*GolangMigrateStrategy, error) {
	if strings.ToLower(cfg.Driver) != config.DriverMySQL {
		return nil, fmt.Errorf("golang-migrate strategy supports mysql only, got %q", cfg.Driver)
	}
	return &GolangMigrateStrategy{
		dsn:    cfg.GetDSN(),
		logger: log.With("component", "migration.golang-migrate"),
	}, nil
}

// Migrate executes golang-migrate migration
func (s *GolangMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	m, err := s.createMigrateInstance()
	if err != nil {
		return err
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually", "version", currentVersion)
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) Rollback(ctx context.Context, db *gorm.DB, steps int) error {
	m, err := s.createMigrateInstance()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	m, err := s.createMigrateInstance()
	if err != nil {
		return 0, err
	}
	defer m.Close()

	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return int64(v), nil
}

// GetName returns the strategy name
func (s *GolangMigrateStrategy) GetName() string {
	return StrategyGolangMigrate
}

func (s *GolangMigrateStrategy) createMigrateInstance() (*migrate.Migrate, error) {
	src, err := iofs.New(scriptsFS, "scripts/golang-migrate/mysql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded scripts: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// GooseStrategy applies the embedded per-dialect goose scripts.
type GooseStrategy struct {
	dialect goose.Dialect
	dir     string
	logger  logger.Interface
}

func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	var dialect goose.Dialect
	switch strings.ToLower(driver) {
	case config.DriverSQLite, "":
		dialect, driver = goose.DialectSQLite3, config.DriverSQLite
	case config.DriverMySQL:
		dialect = goose.DialectMySQL
	case config.DriverPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("goose strategy does not support driver %q", driver)
	}
	return &GooseStrategy{
		dialect: dialect,
		dir:     path.Join("scripts/goose", strings.ToLower(driver)),
		logger:  log.With("component", "migration.goose"),
	}, nil
}

// provider is not closed after use: Close would close the shared pool.
func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	fsys, err := fs.Sub(scriptsFS, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded scripts: %w", err)
	}
	p, err := goose.NewProvider(s.dialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	currentVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Debugw("applied migration", "version", r.Source.Version, "duration", r.Duration)
	}

	finalVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) Rollback(ctx context.Context, db *gorm.DB, steps int) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		if _, err := p.Down(ctx); err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				break
			}
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

// Pending lists the versions of migrations not yet applied.
func (s *GooseStrategy) Pending(ctx context.Context, db *gorm.DB) ([]int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	var pending []int64
	for _, st := range statuses {
		if st.State == goose.StatePending {
			pending = append(pending, st.Source.Version)
		}
	}
	return pending, nil
}

func (s *GooseStrategy) GetName() string {
	return StrategyGoose
}
