package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/app"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/catalog"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/consol"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/observability"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/cache"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/db"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pos"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	consolRepo := consol.NewRepository(pool)
	consolService := consol.NewService(consolRepo, cfg.ConsolFetchConcurrency)
	consolCache := consol.NewCache(redisClient, cfg.ConsolCacheTTL)

	enqueuer := jobs.NewEnqueuer(asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}))
	defer func() {
		if err := enqueuer.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	catalogRepo := catalog.NewRepository(pool)
	sessions := pos.NewSessionStore(redisClient, cfg.CartSessionTTL)
	posService := pos.NewService(catalogRepo, sessions)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Metrics:        metrics,
		PricingHandler: pricing.NewHandler(logger),
		ConsolHandler:  consol.NewHandler(logger, consolService, consolCache, enqueuer),
		POSHandler:     pos.NewHandler(logger, posService),
		CatalogHandler: catalog.NewHandler(logger, catalogRepo),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
