package store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// setupPostgres connects to TEST_DB_HOST when set, otherwise starts a container, then applies migrations
func setupPostgres(ctx context.Context) error {
	dbHost := os.Getenv("TEST_DB_HOST")

	var dsn string
	if dbHost != "" {
		dbPort := envOr("TEST_DB_PORT", "5432")
		dbUser := envOr("TEST_DB_USER", "postgres")
		dbPassword := envOr("TEST_DB_PASSWORD", "postgres")
		dbName := envOr("TEST_DB_NAME", "test_db")

		dsn = (&url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(dbUser, dbPassword),
			Host:     dbHost + ":" + dbPort,
			Path:     dbName,
			RawQuery: "sslmode=disable",
		}).String()

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		var err error
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			return fmt.Errorf("failed to start PostgreSQL container: %w", err)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			return fmt.Errorf("failed to get connection string: %w", err)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	var err error
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return MigrateUp(testDB)
}

func teardownPostgres(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// beginPGTestTx opens a transaction rolled back when the test ends
func beginPGTestTx(t *testing.T) *gorm.DB {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return tx
}

func initPGTestDB(t *testing.T) Store {
	return NewPGStore(beginPGTestTx(t))
}

// cleanupPGTestDB is a no-op: the transaction rollback registered in initPGTestDB restores state
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

func TestPostgreSQLCursorStore(t *testing.T) {
	RunCursorStoreTests(t, func(t *testing.T) CursorStore {
		return NewCursorStore(beginPGTestTx(t))
	})
}

func TestPostgreSQLMigrationVersion(t *testing.T) {
	version, dirty, err := MigrationVersion(testDB)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(3), version)
}
