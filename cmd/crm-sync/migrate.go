package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm-sync/internal/bootstrap"
	"github.com/feral-file/ff-crm-sync/internal/config"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/store"
)

func migrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), opts, "migrate-down", func(db *gorm.DB) error {
				return store.MigrateDown(db, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), opts, "migrate-up", store.MigrateUp)
		},
	})
	cmd.AddCommand(down)
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), opts, "migrate-version", func(db *gorm.DB) error {
				version, dirty, err := store.MigrationVersion(db)
				if err != nil {
					return err
				}
				fmt.Printf("version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

func withDatabase(ctx context.Context, opts *rootOptions, command string, fn func(db *gorm.DB) error) error {
	cfg, err := loadConfig(opts, command)
	if err != nil {
		return err
	}

	if cfg.Driver != config.StoreDriverPostgres {
		logger.InfoCtx(ctx, "Nothing to migrate, MongoDB indexes are created on connect", zap.String("store_driver", cfg.Driver))
		return nil
	}

	db, err := bootstrap.OpenPostgres(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	if err := fn(db); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Migration command finished", zap.String("command", command))
	return nil
}
