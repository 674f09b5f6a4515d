package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"tracker/internal/infrastructure/migration"
	"tracker/internal/interfaces/cli/common"
	httpRouter "tracker/internal/interfaces/http"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/version"
)

const shutdownTimeout = 30 * time.Second

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the tracker HTTP API with the given configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production); overrides server.mode")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" && env == "" {
		env = envVar
	}

	rt, err := common.Setup(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config
	log := rt.Log

	log.Infow("starting server",
		"mode", cfg.Server.Mode,
		"version", version.Current(),
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := handleMigrations(ctx, rt); err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(ctx, rt.DB, cfg, biztime.SystemClock{}, log)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// handleMigrations applies migrations when --auto-migrate is set and
// otherwise only reports the schema version.
func handleMigrations(ctx context.Context, rt *common.Runtime) error {
	manager, err := migration.NewManager(&rt.Config.Database, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to create migration manager: %w", err)
	}

	if autoMigrate {
		if rt.Config.Server.Mode == gin.ReleaseMode {
			rt.Log.Warnw("auto-migration is enabled in release mode")
		}
		if err := manager.Migrate(ctx, rt.DB); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	v, err := manager.Version(ctx, rt.DB)
	if err != nil {
		rt.Log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	rt.Log.Infow("current migration version", "version", v, "strategy", manager.GetStrategy().GetName())
	return nil
}
