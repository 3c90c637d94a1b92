package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"customer-panel/internal/config"
	"customer-panel/internal/db"
	"customer-panel/internal/logging"
	"customer-panel/internal/seed"
)

func main() {
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

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied")
}
