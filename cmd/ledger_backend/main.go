package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Payables Ledger API
// @version 1.0
// @description Tracks payables and receivables, settles them against bank accounts and keeps a journal of every balance change.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "ledger_backend",
		Short: "Payables and receivables ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCommand(logger), newMigrateCommand(logger), newAPIKeyCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
