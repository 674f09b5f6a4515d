package main

import (
	"os"

	"github.com/spf13/cobra"

	"tracker/internal/interfaces/cli/migrate"
	"tracker/internal/interfaces/cli/seed"
	"tracker/internal/interfaces/cli/server"
	"tracker/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tracker",
		Short:   "Tracker - ticket lifecycle and audit service",
		Long:    `Tracker serves the ticket API and ships the tools to migrate its database and provision users.`,
		Version: version.Current(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
