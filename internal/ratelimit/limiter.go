package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/metrics"
)

// ErrClosed is returned by Wait after Close
var ErrClosed = errors.New("rate limiter is closed")

// Limiter paces requests to the marketing platform
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Wait blocks until a request may be sent or ctx is done
	Wait(ctx context.Context) error

	// Close stops the health monitor and closes the Redis connection
	Close() error
}

// Config holds the limiter settings
type Config struct {
	// Key identifies the shared budget in Redis
	Key               string
	RequestsPerSecond int
	Burst             int
}

type limiter struct {
	cfg   Config
	redis adapter.RedisClient
	clock adapter.Clock

	distributed adapter.RedisRateLimiter
	// preFilter keeps each process under the shared rate before asking Redis
	preFilter *rate.Limiter
	local     *rate.Limiter

	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	done           chan struct{}
}

// NewLocalLimiter creates a limiter that only paces the current process
func NewLocalLimiter(cfg Config) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	l := &limiter{
		cfg:   cfg,
		local: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		done:  make(chan struct{}),
	}
	return l, nil
}

// NewLimiter creates a limiter sharing its budget through Redis. It falls back to a
// local limiter while Redis is unreachable.
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		logger.Warn("Redis unavailable, will use local rate limiter", zap.Error(err))
	}

	l := &limiter{
		cfg:         cfg,
		redis:       rc,
		clock:       clock,
		distributed: rc.NewRateLimiter(),
		preFilter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		local:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		done:        make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth(clock.NewTicker(10 * time.Second))

	logger.Info("Rate limiter initialized",
		zap.String("key", cfg.Key),
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("redis_available", redisAvailable),
	)

	return l, nil
}

// Do waits for the limiter and runs fn. A nil limiter runs fn directly.
func Do[T any](ctx context.Context, l Limiter, fn func(ctx context.Context) (T, error)) (T, error) {
	if l != nil {
		if err := l.Wait(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
	return fn(ctx)
}

func (l *limiter) Wait(ctx context.Context) error {
	if l.closed.Load() {
		return ErrClosed
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if l.distributed == nil || !l.redisAvailable.Load() {
			metrics.RateLimitWaitsTotal.WithLabelValues("local").Inc()
			return l.local.Wait(ctx)
		}

		allowed, retryAfter, err := l.tryDistributed(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.redisAvailable.Store(false)
			logger.Warn("Redis rate limiter error, falling back to local", zap.Error(err))
			continue
		}
		if allowed {
			return nil
		}

		metrics.RateLimitWaitsTotal.WithLabelValues("redis").Inc()
		// 50-150% of retryAfter spreads concurrent waiters
		jitter := time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(jitter):
		}
	}
}

// tryDistributed asks Redis for a token and returns (allowed, retryAfter, err)
func (l *limiter) tryDistributed(ctx context.Context) (bool, time.Duration, error) {
	if err := l.preFilter.Wait(ctx); err != nil {
		return false, 0, err
	}

	res, err := l.distributed.Allow(ctx, l.cfg.Key, redis_rate.PerSecond(l.cfg.RequestsPerSecond))
	if err != nil {
		return false, 0, err
	}
	if res.Allowed == 0 {
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("key", l.cfg.Key),
			zap.Duration("retry_after", res.RetryAfter))
		retryAfter := res.RetryAfter
		if retryAfter <= 0 {
			retryAfter = 100 * time.Millisecond
		}
		return false, retryAfter, nil
	}
	return true, 0, nil
}

// monitorRedisHealth re-enables the distributed limiter once Redis answers again
func (l *limiter) monitorRedisHealth(ticker *time.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		available := err == nil
		if !l.redisAvailable.Swap(available) && available {
			logger.Info("Redis connection restored")
		}
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
		if l.redis != nil {
			if closeErr := l.redis.Close(); closeErr != nil {
				logger.Warn("Error closing Redis connection", zap.Error(closeErr))
				err = closeErr
			}
		}
	})
	return err
}

func validateConfig(cfg *Config) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.Key == "" {
		cfg.Key = "crm-sync:ratelimit:eloqua"
	}
	return nil
}
