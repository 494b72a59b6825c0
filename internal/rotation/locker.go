package rotation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
)

// Locker serializes rotations of the same (category, region) pair
//
//go:generate mockgen -source=locker.go -destination=../mocks/locker.go -package=mocks -mock_names=Locker=MockLocker,Lock=MockLock
type Locker interface {
	// Acquire blocks until the lock for key is held or ctx is done
	Acquire(ctx context.Context, key string) (Lock, error)
}

// Lock is a held lock
type Lock interface {
	Release(ctx context.Context) error
}

// LockKey names the lock of a (category, region) pair
func LockKey(category domain.Category, region domain.Region) string {
	return fmt.Sprintf("rotation:%s:%s", category, region.Key())
}

// localLocker holds one single-slot channel per key
type localLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() Locker {
	return &localLocker{slots: make(map[string]chan struct{})}
}

func (l *localLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

func (l *localLocker) Acquire(ctx context.Context, key string) (Lock, error) {
	s := l.slot(key)
	select {
	case s <- struct{}{}:
		return &localLock{slot: s}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLockNotAcquired, key, ctx.Err())
	}
}

type localLock struct {
	once sync.Once
	slot chan struct{}
}

func (l *localLock) Release(context.Context) error {
	l.once.Do(func() { <-l.slot })
	return nil
}

// releaseScript deletes the key only when it still holds our token
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// RedisLockerConfig holds the Redis locker settings
type RedisLockerConfig struct {
	// Prefix is prepended to every lock key
	Prefix string
	// TTL bounds how long a crashed holder keeps the lock
	TTL time.Duration
	// WaitTimeout bounds how long Acquire retries a held lock
	WaitTimeout time.Duration
}

type redisLocker struct {
	client adapter.RedisClient
	cfg    RedisLockerConfig
}

// NewRedisLocker creates a locker shared across processes through Redis
func NewRedisLocker(client adapter.RedisClient, cfg RedisLockerConfig) Locker {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = cfg.TTL
	}
	return &redisLocker{client: client, cfg: cfg}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (Lock, error) {
	redisKey := l.cfg.Prefix + key
	token := uuid.NewString()

	operation := func() error {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.cfg.TTL).Result()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to set lock %s: %w", redisKey, err))
		}
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrLockNotAcquired, redisKey)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = l.cfg.WaitTimeout

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Acquired rotation lock", zap.String("key", redisKey))
	return &redisLock{client: l.client, key: redisKey, token: token}, nil
}

type redisLock struct {
	client adapter.RedisClient
	key    string
	token  string
}

func (l *redisLock) Release(ctx context.Context) error {
	if err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}
