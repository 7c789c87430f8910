package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ihirwe/stockroom/internal/config"
	"github.com/ihirwe/stockroom/internal/event"
	"github.com/ihirwe/stockroom/internal/http"
	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/log"
	"github.com/ihirwe/stockroom/internal/notify"
	"github.com/ihirwe/stockroom/internal/repository"
	"github.com/ihirwe/stockroom/internal/storage/db"
	"github.com/ihirwe/stockroom/internal/storage/mq"
	"github.com/ihirwe/stockroom/internal/telemetry"
	"github.com/ihirwe/stockroom/pkg/cmdutil"
	"github.com/ihirwe/stockroom/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running server application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Otel     config.Otel
		Kafka    config.Kafka
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	var publisher event.Publisher
	if cfg.Kafka.Enabled {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()

		publisher = event.NewKafkaPublisher(kafkaProducer)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	productRepository := repository.NewProductRepository(dbClient)
	historyRepository := repository.NewHistoryRepository(dbClient)

	manager := inventory.NewManager(
		logger,
		notify.NewSlogNotifier(logger),
		v,
		productRepository,
		historyRepository,
		publisher,
	)

	// Initial load. A failing store at boot is surfaced but not fatal; the
	// products endpoint can refresh once the store recovers.
	if err := manager.Fetch(ctx); err != nil {
		logger.WarnContext(ctx, "initial product load failed", slog.Any("error", err))
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, manager, dbClient, prometheus.DefaultRegisterer)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

	return nil
}
