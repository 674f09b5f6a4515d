// Package common holds the start-up steps shared by the CLI commands.
package common

import (
	"fmt"

	"gorm.io/gorm"

	"tracker/internal/infrastructure/config"
	"tracker/internal/infrastructure/database"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/logger"
)

// Runtime is a loaded configuration with the logger and database it describes.
type Runtime struct {
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
}

// Close releases the database connection.
func (r *Runtime) Close() {
	if r.DB == nil {
		return
	}
	if err := database.Close(r.DB); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
}

// Setup loads config, initializes the logger and business timezone, then
// opens the database.
func Setup(env, configPath string) (*Runtime, error) {
	cfg, err := config.Load("", configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env, cfg.Server.Mode)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Runtime{Config: cfg, Log: log, DB: db}, nil
}

// GinMode maps an environment name to a gin mode. An empty env keeps fallback.
func GinMode(env, fallback string) string {
	switch env {
	case "production", "prod", "release":
		return "release"
	case "development", "dev", "debug":
		return "debug"
	case "test", "testing":
		return "test"
	case "":
		if fallback == "" {
			return "debug"
		}
		return fallback
	default:
		return "debug"
	}
}
