package main

import (
	"context"
	"fmt"
	"log/slog"

	portsevents "github.com/SscSPs/payables_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/core/services"
	"github.com/SscSPs/payables_ledger/internal/events"
	"github.com/SscSPs/payables_ledger/internal/events/kafka"
	"github.com/SscSPs/payables_ledger/internal/handlers"
	"github.com/SscSPs/payables_ledger/internal/middleware"
	"github.com/SscSPs/payables_ledger/internal/platform/config"
	"github.com/SscSPs/payables_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/payables_ledger/internal/repositories/memory"
	"github.com/SscSPs/payables_ledger/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(logger *slog.Logger) *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cmd.Context(), logger, cfg, skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	return cmd
}

func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, skipMigrations bool) error {
	repos, closeRepos, err := openRepositories(ctx, logger, cfg, skipMigrations)
	if err != nil {
		return err
	}
	defer closeRepos()

	publisher := newPublisher(logger, cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", slog.String("error", err.Error()))
		}
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, publisher)
	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

// openRepositories wires the configured storage driver.
func openRepositories(ctx context.Context, logger *slog.Logger, cfg *config.Config, skipMigrations bool) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func newPublisher(logger *slog.Logger, cfg *config.Config) portsevents.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, settlement events are dropped")
		return events.NoopPublisher{}
	}
	logger.Info("Publishing settlement events", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}
