package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"customer-panel/internal/config"
	"customer-panel/internal/db"
	"customer-panel/internal/logging"
	"customer-panel/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if *down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatal("roll back migration", zap.Error(err))
		}
		logger.Info("migration rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}
