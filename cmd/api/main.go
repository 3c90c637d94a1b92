package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"customer-panel/internal/cache"
	"customer-panel/internal/config"
	"customer-panel/internal/db"
	"customer-panel/internal/httpserver"
	"customer-panel/internal/logging"
	capabilityrepo "customer-panel/internal/repository/capability"
	catalogrepo "customer-panel/internal/repository/catalog"
	enrollmentrepo "customer-panel/internal/repository/enrollment"
	orderrepo "customer-panel/internal/repository/order"
	tokenrepo "customer-panel/internal/repository/token"
	userrepo "customer-panel/internal/repository/user"
	accesssvc "customer-panel/internal/service/access"
	coursessvc "customer-panel/internal/service/courses"
	filtersvc "customer-panel/internal/service/filter"
	orderssvc "customer-panel/internal/service/orders"
	sessionsvc "customer-panel/internal/service/session"
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
	dbpool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	certIDs := certificateIDStore(cfg.Redis, logger)

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	enrollmentRepo := enrollmentrepo.NewPostgres(dbpool, logger)
	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	capabilityRepo := capabilityrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	courseAgg := coursessvc.New(catalogRepo, enrollmentRepo, certIDs, logger)
	orderAgg := orderssvc.New(orderRepo, logger)
	guard := accesssvc.New(orderRepo, courseAgg, capabilityRepo, logger)
	filterEngine := filtersvc.New(orderRepo, enrollmentRepo, userRepo, courseAgg, logger)
	sessions := sessionsvc.New(tokenRepo)

	srv, err := httpserver.New(cfg.HTTP.Addr, logger, dbpool, httpserver.Deps{
		Guard:            guard,
		Courses:          courseAgg,
		Orders:           orderAgg,
		Filter:           filterEngine,
		Users:            userRepo,
		Sessions:         sessions,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// certificateIDStore picks Redis when configured, otherwise the in-memory
// store. A Redis connection failure at startup downgrades with a warning
// rather than refusing to boot.
func certificateIDStore(cfg config.RedisConfig, logger *zap.Logger) cache.CertificateIDStore {
	if cfg.Addr == "" {
		return cache.NewMemoryCertificateIDStore()
	}
	store, err := cache.NewRedisCertificateIDStore(cache.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, using in-memory certificate store", zap.Error(err))
		return cache.NewMemoryCertificateIDStore()
	}
	return store
}
