package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/app"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/consol"
	jobmetrics "github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/jobs"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/cache"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/db"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	metrics := jobmetrics.NewMetrics(nil)
	reportJob := jobs.NewConsolReportJob(consolService, consolCache, logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskConsolReportBuild, Handler: reportJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
