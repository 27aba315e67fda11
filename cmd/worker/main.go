package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/app"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger(observability.DefaultLogConfig()).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.ServiceLogger("phoenix-worker", cfg.LogLevel, cfg.IsProduction())
	logger.Info("starting phoenix worker")

	var container *app.Container
	if cfg.IsLocalMode() {
		container, err = app.NewLocalContainer(ctx, cfg, logger)
	} else {
		container, err = app.NewContainer(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Points are awarded from the broker when one is configured; otherwise the
	// in-process bus awards them as the outbox drains.
	if cfg.RabbitMQURL != "" && container.InProcessEventBus == nil {
		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:     cfg.RabbitMQURL,
			Logger:  logger,
			Metrics: container.Metrics,
		}, eventbus.NewConsumerRegistry(logger))
		if err != nil {
			logger.Error("failed to create RabbitMQ consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()

		consumer.RegisterConsumer(container.PointsAwarder)
		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("points consumer stopped", "error", err)
				cancel()
			}
		}()
	}

	logger.Info("starting outbox processor",
		"poll_interval", cfg.OutboxPollInterval,
		"batch_size", cfg.OutboxBatchSize,
		"max_retries", cfg.OutboxMaxRetries,
	)
	if err := container.OutboxProcessor.Start(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	scheduler, err := newScheduler(ctx, cfg, newJobs(container, cfg.OutboxRetentionDays))
	if err != nil {
		logger.Error("failed to schedule jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	if cfg.WorkerHealthAddr != "" {
		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           newHealthMux(container),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server error", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	statsTicker := time.NewTicker(cfg.OutboxStatsInterval)
	defer statsTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-statsTicker.C:
				stats := container.OutboxProcessor.GetStats()
				logger.Info("outbox stats",
					"running", stats.IsRunning,
					"published", stats.PublishedCount,
					"failed", stats.FailedCount,
					"dead", stats.DeadCount,
					"lag_seconds", stats.LagSeconds,
					"last_error", stats.LastError,
				)
			}
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down worker")

	<-scheduler.Stop().Done()
	container.OutboxProcessor.Stop()
	logger.Info("worker stopped")
}
