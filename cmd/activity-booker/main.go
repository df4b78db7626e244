package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"activityBooker/internal/booking"
	"activityBooker/internal/config"
	"activityBooker/internal/events/kafka"
	"activityBooker/internal/http-server/router"
	"activityBooker/internal/lib/logger/handlers/slogpretty"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/metrics"
	"activityBooker/internal/storage/memory"
	"activityBooker/internal/storage/postgres"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const driverMemory = "memory"

type appStorage interface {
	router.Storage
	booking.Store
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting activity booker", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	storage, err := setupStorage(ctx, &cfg.Storage)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	metrics.Register()

	metricsSrv := &http.Server{
		Addr:    cfg.Prometheus.Address,
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info("starting metrics server", slog.String("address", cfg.Prometheus.Address))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start metrics server", sl.Err(err))
		}
	}()

	var opts []booking.Option

	var publisher *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = kafka.New(cfg.Kafka, log)
		if err != nil {
			log.Error("failed to init kafka publisher", sl.Err(err))
			os.Exit(1)
		}
		opts = append(opts, booking.WithPublisher(publisher))
	}

	engine := booking.New(log, storage, cfg.Booking, opts...)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router.New(log, storage, engine, cfg),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("application stopping")
	case err = <-serverErr:
		log.Error("failed to start server", sl.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	if err = metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown metrics server", sl.Err(err))
	}

	log.Info("application stopped")

	engine.Wait()

	if publisher != nil {
		if err = publisher.Close(); err != nil {
			log.Error("failed to close kafka producer", sl.Err(err))
		}
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(ctx context.Context, cfg *config.Storage) (appStorage, error) {
	if cfg.Driver == driverMemory {
		return memory.New(), nil
	}

	return postgres.InitDB(ctx, cfg)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
