package store

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm-sync/db"
	"github.com/feral-file/ff-crm-sync/internal/logger"
)

type migrationLogger struct{}

func (migrationLogger) Printf(format string, v ...any) {
	logger.Info("Migration", zap.String("message", fmt.Sprintf(format, v...)))
}

func (migrationLogger) Verbose() bool {
	return false
}

func newMigrator(gdb *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	m.Log = migrationLogger{}

	return m, nil
}

// MigrateUp applies every pending migration
func MigrateUp(gdb *gorm.DB) error {
	m, err := newMigrator(gdb)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// MigrateDown rolls back the given number of migrations
func MigrateDown(gdb *gorm.DB, steps int) error {
	m, err := newMigrator(gdb)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	return nil
}

// MigrationVersion returns the current schema version and whether it is dirty
func MigrationVersion(gdb *gorm.DB) (uint, bool, error) {
	m, err := newMigrator(gdb)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}

	return version, dirty, nil
}
