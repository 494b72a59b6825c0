package rotation_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/rotation"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, "rotation:contact:UK", rotation.LockKey(domain.CategoryContact, uk))
	assert.Equal(t, "rotation:activity:ES:PT", rotation.LockKey(domain.CategoryActivity, domain.Region{Label: "ES", Pattern: "PT"}))
}

func runLockerTests(t *testing.T, locker rotation.Locker) {
	t.Run("Serializes", func(t *testing.T) {
		var (
			inside  atomic.Int32
			maxSeen atomic.Int32
			wg      sync.WaitGroup
		)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lock, err := locker.Acquire(context.Background(), "serial")
				if !assert.NoError(t, err) {
					return
				}
				n := inside.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(10 * time.Millisecond)
				inside.Add(-1)
				assert.NoError(t, lock.Release(context.Background()))
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), maxSeen.Load())
	})

	t.Run("IndependentKeys", func(t *testing.T) {
		a, err := locker.Acquire(context.Background(), "key-a")
		require.NoError(t, err)
		b, err := locker.Acquire(context.Background(), "key-b")
		require.NoError(t, err)
		require.NoError(t, a.Release(context.Background()))
		require.NoError(t, b.Release(context.Background()))
	})

	t.Run("ContextDone", func(t *testing.T) {
		held, err := locker.Acquire(context.Background(), "held")
		require.NoError(t, err)
		defer func() { _ = held.Release(context.Background()) }()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err = locker.Acquire(ctx, "held")
		assert.Error(t, err)
	})
}

func TestLocalLocker(t *testing.T) {
	runLockerTests(t, rotation.NewLocalLocker())

	t.Run("ReleaseTwice", func(t *testing.T) {
		locker := rotation.NewLocalLocker()
		lock, err := locker.Acquire(context.Background(), "twice")
		require.NoError(t, err)
		require.NoError(t, lock.Release(context.Background()))
		require.NoError(t, lock.Release(context.Background()))

		lock, err = locker.Acquire(context.Background(), "twice")
		require.NoError(t, err)
		require.NoError(t, lock.Release(context.Background()))
	})
}

// redisAddr returns TEST_REDIS_ADDR or the address of a throwaway container
func redisAddr(t *testing.T) string {
	t.Helper()

	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	if testing.Short() {
		t.Skip("skipping redis container in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisLocker(t *testing.T) {
	client := adapter.NewRedisClient(redisAddr(t), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	locker := rotation.NewRedisLocker(client, rotation.RedisLockerConfig{
		Prefix:      fmt.Sprintf("test:%d:", time.Now().UnixNano()),
		TTL:         5 * time.Second,
		WaitTimeout: 5 * time.Second,
	})
	runLockerTests(t, locker)

	t.Run("WaitTimeout", func(t *testing.T) {
		short := rotation.NewRedisLocker(client, rotation.RedisLockerConfig{
			Prefix:      fmt.Sprintf("test-timeout:%d:", time.Now().UnixNano()),
			TTL:         5 * time.Second,
			WaitTimeout: 200 * time.Millisecond,
		})
		held, err := short.Acquire(context.Background(), "k")
		require.NoError(t, err)
		defer func() { _ = held.Release(context.Background()) }()

		_, err = short.Acquire(context.Background(), "k")
		assert.ErrorIs(t, err, domain.ErrLockNotAcquired)
	})
}
