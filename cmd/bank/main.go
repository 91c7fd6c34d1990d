package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/config"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/events"
	"github.com/fluxbank/demo-bank/internal/events/kafka"
	"github.com/fluxbank/demo-bank/internal/handlers"
	"github.com/fluxbank/demo-bank/internal/service"
	"github.com/fluxbank/demo-bank/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting bank api",
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	kv, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store backend", "error", err)
		os.Exit(1)
	}

	dir := directory.New(kv)
	defer dir.Close()

	userService := service.NewUserService(dir, activity.NewLogger(dir, logger), logger)
	if err := userService.SeedAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher
	if len(cfg.App.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.App.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("transfer event publishing enabled", "brokers", cfg.App.KafkaBrokers)
	}

	router := handlers.NewRouter(dir, publisher, cfg, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.KV, error) {
	switch cfg.Store.Backend {
	case "postgres":
		return store.OpenPostgres(ctx, cfg.Store.DSN(), logger)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.OpenFileStore(cfg.Store.Path)
	}
}
