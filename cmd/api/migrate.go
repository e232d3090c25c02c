// cmd/api/migrate.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ammerola/apotek-pos/internal/adapters/db"
	"github.com/ammerola/apotek-pos/internal/pkg/config"
)

func migrationConfig(cfg *config.Config) *db.MigrationConfig {
	return &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")
	return db.RunMigrationsWithRetry(ctx, migrationConfig(cfg), logger, 3)
}

// runMigrateCommand handles "migrate up", "migrate down" and "migrate status"
func runMigrateCommand(ctx context.Context, cfg *config.Config, args []string, logger *slog.Logger) error {
	action := "up"
	if len(args) > 0 {
		action = args[0]
	}

	migrator, err := db.NewMigrator(migrationConfig(cfg), logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	switch action {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		status, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		return fmt.Errorf("unknown migrate action %q (want up, down or status)", action)
	}
}
