package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/payables_ledger/internal/platform/config"
	"github.com/SscSPs/payables_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}
	for _, direction := range []database.MigrationDirection{database.MigrateUp, database.MigrateDown} {
		direction := direction
		cmd.AddCommand(&cobra.Command{
			Use:   string(direction),
			Short: fmt.Sprintf("Run every %s migration", direction),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				if cfg.StorageDriver != config.StorageDriverPostgres {
					return fmt.Errorf("migrations need the %s storage driver, got %s", config.StorageDriverPostgres, cfg.StorageDriver)
				}
				return database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, direction)
			},
		})
	}
	return cmd
}
