package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/salespulse/salespulse/internal/analytics"
	reporthttp "github.com/salespulse/salespulse/internal/analytics/http"
	"github.com/salespulse/salespulse/internal/app"
	"github.com/salespulse/salespulse/internal/insights"
	"github.com/salespulse/salespulse/internal/observability"
	"github.com/salespulse/salespulse/internal/platform/cache"
	"github.com/salespulse/salespulse/internal/platform/db"
	"github.com/salespulse/salespulse/internal/sales"
	"github.com/salespulse/salespulse/internal/sample"
	"github.com/salespulse/salespulse/internal/status"
	"github.com/salespulse/salespulse/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := sales.EnsureSchema(ctx, pool); err != nil {
		logger.Error("ensure sales schema", slog.Any("error", err))
		os.Exit(1)
	}
	if err := status.EnsureSchema(ctx, pool); err != nil {
		logger.Error("ensure status schema", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	reportCache := analytics.NewCache(redisClient, cfg.CacheTTL)

	salesRepo := sales.NewRepository(pool)
	sampleService := sample.NewService(salesRepo, reportCache, logger, sample.ServiceConfig{
		WindowDays: cfg.SampleWindowDays,
		Customers:  cfg.SampleCustomers,
		Seed:       cfg.SampleSeed,
	})

	analyticsService := analytics.NewService(salesRepo, reportCache)
	reportHandler := reporthttp.NewHandler(logger, analyticsService, sampleService, salesRepo)

	var generator insights.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := insights.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("gemini unavailable, using static insights", slog.Any("error", err))
		} else {
			defer func() {
				if err := gemini.Close(); err != nil {
					logger.Warn("gemini close", slog.Any("error", err))
				}
			}()
			generator = gemini
		}
	}
	insightsService := insights.NewService(salesRepo, generator, logger)
	insightsHandler := insights.NewHandler(logger, insightsService)

	statusRepo := status.NewRepository(pool)
	statusHandler := status.NewHandler(logger, statusRepo)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ReportHandler:   reportHandler,
		InsightsHandler: insightsHandler,
		StatusHandler:   statusHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
