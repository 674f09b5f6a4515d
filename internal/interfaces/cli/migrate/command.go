package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracker/internal/infrastructure/migration"
	"tracker/internal/interfaces/cli/common"
)

var (
	env        string
	configPath string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect database migrations using the configured strategy.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*common.Runtime, *migration.Manager, error) {
	rt, err := common.Setup(env, configPath)
	if err != nil {
		return nil, nil, err
	}

	manager, err := migration.NewManager(&rt.Config.Database, rt.Log)
	if err != nil {
		rt.Close()
		return nil, nil, fmt.Errorf("failed to create migration manager: %w", err)
	}
	return rt, manager, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, manager, err := initEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := manager.Migrate(cmd.Context(), rt.DB); err != nil {
		return err
	}

	rt.Log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	rt, manager, err := initEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Log.Infow("rolling back migrations", "steps", steps)
	if err := manager.Rollback(cmd.Context(), rt.DB, steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	rt.Log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, manager, err := initEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	v, err := manager.Version(ctx, rt.DB)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Migration Status:\n")
	fmt.Fprintf(out, "  Strategy:        %s\n", manager.GetStrategy().GetName())
	fmt.Fprintf(out, "  Current Version: %d\n", v)

	if goose, ok := manager.GetStrategy().(*migration.GooseStrategy); ok {
		pending, err := goose.Pending(ctx, rt.DB)
		if err != nil {
			return fmt.Errorf("failed to list pending migrations: %w", err)
		}
		fmt.Fprintf(out, "  Pending:         %d\n", len(pending))
		for _, p := range pending {
			fmt.Fprintf(out, "    - %d\n", p)
		}
	}

	return nil
}
