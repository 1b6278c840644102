package main

import (
	"context"
	"flag"
	"log"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/migration"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/postgresql/migrations"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/pkg/config"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up or down")
		steps     = flag.Int("steps", 0, "Number of steps to migrate (0 = all)")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	pgClient, err := postgresql.NewClient(ctx, cfg.PostgreSQL)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	runner := migration.NewRunner(pgClient, l, migration.Config{
		Source:    migrations.FS,
		Schema:    cfg.PostgreSQL.SearchPath,
		TableName: "schema_migrations",
	})

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		log.Fatalf("Failed to create migration table: %v", err)
	}

	var applied int
	switch *direction {
	case "up":
		applied, err = runner.MigrateUp(ctx, *steps)
	case "down":
		applied, err = runner.MigrateDown(ctx, *steps)
	default:
		log.Fatalf("Invalid direction: %s. Use 'up' or 'down'", *direction)
	}
	if err != nil {
		log.Fatalf("Failed to migrate %s: %v", *direction, err)
	}

	l.Info("Migration completed",
		logger.Field{Key: "direction", Value: *direction},
		logger.Field{Key: "steps", Value: applied},
	)
}
