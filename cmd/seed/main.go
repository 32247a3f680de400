// Seeder loads the geography reference data and a demo election, safe to
// re-run against an existing database.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pobimgroup/election-dashboard/internal/platform/config"
	"github.com/pobimgroup/election-dashboard/internal/platform/logger"
	"github.com/pobimgroup/election-dashboard/internal/platform/migrations"
	"github.com/pobimgroup/election-dashboard/internal/platform/seed"
	postgresstorage "github.com/pobimgroup/election-dashboard/internal/platform/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("postgres connection failed", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("sql.DB unwrap failed", "err", err)
	}
	defer sqlDB.Close()

	// The schema must exist before the seeder touches it.
	if err := migrations.Run(db); err != nil {
		logger.Fatal("migration failed", "err", err)
	}

	seeder := seed.NewSeeder(db)
	if err := seeder.Run(ctx, cfg.SeedDataDir); err != nil {
		logger.Fatal("seed failed", "err", err)
	}

	logger.Info("seed completed", "dataDir", cfg.SeedDataDir)
}
