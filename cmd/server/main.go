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

	"github.com/nekogravitycat/gym-trial-backend/internal/app"
	"github.com/nekogravitycat/gym-trial-backend/internal/config"
	"github.com/nekogravitycat/gym-trial-backend/internal/db"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/events"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/storage"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/tracing"
)

const serviceName = "gym-trial-backend"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.IsProduction(), cfg.LogLevel)
	slog.SetDefault(logger)

	pool, err := db.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.OTLPEndpoint, serviceName, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
		logger.Info("publishing trial events", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return err
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:   cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		DBPool:         pool,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTAccessTokenTTL,
		BcryptCost:     cfg.BcryptCost,
		Storage:        store,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Publisher:      publisher,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if cfg.BootstrapAdminEmail != "" {
		admin, err := container.UserService.EnsureAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}
		logger.Info("bootstrap admin ready", "user_id", admin.ID, "email", admin.Email)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", "error", err)
	}

	logger.Info("server exited gracefully")
	return nil
}
