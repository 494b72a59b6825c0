package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-crm-sync/internal/config"
	"github.com/feral-file/ff-crm-sync/internal/logger"
)

var Version = "dev"

type rootOptions struct {
	configFile string
	envPath    string
}

func main() {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "crm-sync",
		Short:         "Batch runs of the CRM sync cycles",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.ChdirRepoRoot()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.envPath, "env", "config/", "Path to environment files")

	rootCmd.AddCommand(outboundCmd(opts))
	rootCmd.AddCommand(inboundCmd(opts))
	rootCmd.AddCommand(migrateCmd(opts))

	err := rootCmd.Execute()
	logger.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the job configuration and initializes the logger for a command
func loadConfig(opts *rootOptions, command string) (*config.JobConfig, error) {
	cfg, err := config.LoadJobConfig(opts.configFile, opts.envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "crm-sync",
			"command": command,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}
