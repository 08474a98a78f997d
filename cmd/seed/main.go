package main

import (
	"context"
	"os"

	"photoshare/internal/config"
	"photoshare/internal/db"
	"photoshare/internal/logging"
	"photoshare/internal/repository"
	"photoshare/internal/seed"
)

// Loads the bundled example dataset into the configured database, replacing
// whatever it held.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	ctx := context.Background()

	if cfg.DBDriver == config.DriverMemory {
		log.Error(ctx, "nothing to seed: the memory store is loaded by the server on start")
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Error(ctx, "database init", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Error(ctx, "auto-migrate", "error", err)
		os.Exit(1)
	}

	ds, err := seed.Bundled()
	if err != nil {
		log.Error(ctx, "load dataset", "error", err)
		os.Exit(1)
	}

	res, err := seed.Load(ctx, repository.NewGormSet(gormDB), ds, log)
	if err != nil {
		log.Error(ctx, "seed", "error", err)
		os.Exit(1)
	}

	log.Info(ctx, "seed completed",
		"users", res.Users,
		"photos", res.Photos,
		"comments", res.Comments,
		"version", res.Version,
	)
}
