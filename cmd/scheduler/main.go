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
	"github.com/feral-file/ff-crm-sync/internal/config"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	temporal "github.com/feral-file/ff-crm-sync/internal/providers/temporal"
	"github.com/feral-file/ff-crm-sync/internal/sweeper"
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
	cfg, err := config.LoadSchedulerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "scheduler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sync Scheduler")

	// Connect to Temporal
	temporalClient, err := client.Dial(temporal.ClientOptions(cfg.Temporal.HostPort, cfg.Temporal.Namespace))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	dailySweeper, err := sweeper.NewDailySyncSweeper(
		sweeper.DailySyncConfig{
			InboundAt:     cfg.Schedule.InboundAt,
			OutboundAt:    cfg.Schedule.OutboundAt,
			CheckInterval: cfg.Schedule.CheckInterval,
			Regions:       cfg.Sync.Regions,
		},
		workflows.NewLauncher(temporalClient, cfg.Temporal.TaskQueue),
		adapter.NewClock(),
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create daily sync sweeper", zap.Error(err))
	}

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := dailySweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := dailySweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	cancel()

	logger.Info("Scheduler stopped")
}
