// Package bootstrap wires the configured backends into the components the binaries run.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/config"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/messaging"
	"github.com/feral-file/ff-crm-sync/internal/metrics"
	"github.com/feral-file/ff-crm-sync/internal/orchestrator"
	"github.com/feral-file/ff-crm-sync/internal/providers/eloqua"
	"github.com/feral-file/ff-crm-sync/internal/providers/jetstream"
	"github.com/feral-file/ff-crm-sync/internal/providers/kafka"
	"github.com/feral-file/ff-crm-sync/internal/ratelimit"
	"github.com/feral-file/ff-crm-sync/internal/rotation"
	"github.com/feral-file/ff-crm-sync/internal/store"
	"github.com/feral-file/ff-crm-sync/internal/syncengine"
)

const lockPrefix = "crm-sync:lock:"

// Cleanup releases what a constructor opened. It is safe to call on a nil value.
type Cleanup func()

func (c Cleanup) Run() {
	if c != nil {
		c()
	}
}

func chain(cleanups ...Cleanup) Cleanup {
	return func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i].Run()
		}
	}
}

// Stores bundles the record store and the cursor store of the configured backend
type Stores struct {
	Store   store.Store
	Cursors store.CursorStore
}

// OpenPostgres connects to PostgreSQL, registering the read replica when one is configured
func OpenPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.ReadHost != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReadDSN())},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to register read replica: %w", err)
		}
		logger.Info("Registered database read replica", zap.String("read_host", cfg.ReadHost))
	}

	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenStores opens the record and cursor stores of the configured driver
func OpenStores(ctx context.Context, cfg config.StoreConfig) (*Stores, Cleanup, error) {
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		db, err := OpenPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.String("host", cfg.Database.Host),
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		)

		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return &Stores{Store: store.NewPGStore(db), Cursors: store.NewCursorStore(db)}, cleanup, nil

	case config.StoreDriverMongo:
		client, err := store.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := store.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		logger.InfoCtx(ctx, "Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

		cleanup := func() {
			_ = client.Disconnect(context.Background())
		}
		return &Stores{Store: store.NewMongoStore(db), Cursors: store.NewMongoCursorStore(db)}, cleanup, nil
	}

	return nil, nil, fmt.Errorf("unsupported store_driver %q", cfg.Driver)
}

// NewRedisClient returns nil when Redis is not configured
func NewRedisClient(cfg config.RedisConfig) adapter.RedisClient {
	if cfg.Addr == "" {
		return nil
	}
	return adapter.NewRedisClient(cfg.Addr, cfg.Password, cfg.DB)
}

// NewLimiter paces platform requests, through Redis when a client is given
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (ratelimit.Limiter, error) {
	rlCfg := ratelimit.Config{
		Key:               cfg.KeyPrefix + ":eloqua",
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	}
	if rc == nil {
		return ratelimit.NewLocalLimiter(rlCfg)
	}
	return ratelimit.NewLimiter(rlCfg, rc, clock)
}

// NewPlatform builds the platform collaborator over a rate limited bulk client
func NewPlatform(cfg config.EloquaConfig, limiter ratelimit.Limiter) eloqua.Platform {
	client := eloqua.NewClient(eloqua.Config{
		BaseURL:         cfg.BaseURL,
		Company:         cfg.Company,
		User:            cfg.User,
		Password:        cfg.Password,
		SyncLimit:       cfg.SyncLimit,
		PageSize:        cfg.PageSize,
		PollInterval:    cfg.PollInterval,
		PollTimeout:     cfg.PollTimeout,
		ImportChunkSize: cfg.ImportChunkSize,
	}, adapter.NewHTTPClient(cfg.Timeout), limiter)

	return eloqua.NewPlatform(client, eloqua.CustomObjectConfig{
		ActivityID:        cfg.ActivityCDOID,
		InstitutionID:     cfg.InstitutionCDOID,
		ActivityFields:    cfg.ActivityCDOFields,
		InstitutionFields: cfg.InstitutionCDOFields,
	})
}

// NewLocker serialises rotations across processes when Redis is configured, within the process otherwise
func NewLocker(rc adapter.RedisClient, ttl time.Duration) rotation.Locker {
	if rc == nil {
		return rotation.NewLocalLocker()
	}
	return rotation.NewRedisLocker(rc, rotation.RedisLockerConfig{Prefix: lockPrefix, TTL: ttl})
}

// NewPublisher connects the configured report publisher. No provider drops reports.
func NewPublisher(ctx context.Context, cfg config.EventsConfig) (messaging.Publisher, error) {
	switch cfg.Provider {
	case "":
		return messaging.NewNoopPublisher(), nil
	case config.EventsProviderNATS:
		return jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
	case config.EventsProviderKafka:
		writer := adapter.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.BatchTimeout)
		return kafka.NewPublisher(writer, adapter.NewJSON()), nil
	}
	return nil, fmt.Errorf("unsupported events.provider %q", cfg.Provider)
}

// NewOrchestrator wires the sync orchestrator from the job configuration
func NewOrchestrator(ctx context.Context, cfg *config.JobConfig) (orchestrator.Orchestrator, Cleanup, error) {
	clock := adapter.NewClock()

	stores, closeStores, err := OpenStores(ctx, cfg.StoreConfig)
	if err != nil {
		return nil, nil, err
	}

	rc := NewRedisClient(cfg.Redis)
	closeRedis := func() {
		if rc != nil {
			_ = rc.Close()
		}
	}

	limiter, err := NewLimiter(cfg.RateLimit, rc, clock)
	if err != nil {
		chain(closeStores, closeRedis).Run()
		return nil, nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	closeLimiter := func() { _ = limiter.Close() }

	publisher, err := NewPublisher(ctx, cfg.Events)
	if err != nil {
		chain(closeStores, closeRedis, closeLimiter).Run()
		return nil, nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	o := orchestrator.New(
		orchestrator.Config{
			Regions:         cfg.Sync.Regions,
			ActivityTypes:   cfg.Sync.ActivityTypes,
			PageViewWorkers: cfg.Sync.PageViewWorkers,
		},
		stores.Store,
		stores.Cursors,
		syncengine.NewJoiner(stores.Store, cfg.Sync.StageJoins),
		rotation.NewManager(stores.Store, NewLocker(rc, cfg.Sync.LockTTL), rotation.JoinedViewScope(cfg.Sync.JoinedViewScope)),
		NewPlatform(cfg.Eloqua, limiter),
		publisher,
		clock,
	)

	return o, chain(closeStores, closeLimiter, publisher.Close), nil
}

// ServeMetrics exposes Prometheus metrics on addr until the server is shut down
func ServeMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(fmt.Errorf("metrics server failed: %w", err), zap.String("addr", addr))
		}
	}()
	logger.Info("Serving metrics", zap.String("addr", addr))

	return srv
}
