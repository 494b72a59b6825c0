package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/api/middleware"
	"github.com/feral-file/ff-crm-sync/internal/api/server"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/executor"
	"github.com/feral-file/ff-crm-sync/internal/bootstrap"
	"github.com/feral-file/ff-crm-sync/internal/config"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	temporal "github.com/feral-file/ff-crm-sync/internal/providers/temporal"
	"github.com/feral-file/ff-crm-sync/internal/validation"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting CRM Sync API")

	// Open the record store
	stores, closeStores, err := bootstrap.OpenStores(ctx, cfg.StoreConfig)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open store", zap.Error(err), zap.String("store_driver", cfg.Driver))
	}
	defer closeStores.Run()

	clock := adapter.NewClock()

	// Platform client for the contact export
	redisClient := bootstrap.NewRedisClient(cfg.Redis)
	limiter, err := bootstrap.NewLimiter(cfg.RateLimit, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() { _ = limiter.Close() }()
	platform := bootstrap.NewPlatform(cfg.Eloqua, limiter)

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(temporal.ClientOptions(cfg.Temporal.HostPort, cfg.Temporal.Namespace))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

	exec := executor.NewExecutor(
		stores.Store,
		validation.NewGate(),
		platform,
		workflows.NewLauncher(temporalClient, cfg.Temporal.TaskQueue),
		clock,
		cfg.Sync.Regions,
	)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowOrigins: cfg.Server.AllowOrigins,
		Auth: middleware.AuthConfig{
			Username:     cfg.Auth.Username,
			Password:     cfg.Auth.Password,
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("API server stopped")
}
