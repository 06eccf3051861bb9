package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pillulu/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseExclusive(t *testing.T, l Locker) {
	t.Helper()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLocker_Exclusive(t *testing.T) {
	exerciseExclusive(t, NewLocalLocker())
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()
	release, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, "", 0, logger.NewNop()), mr
}

func TestRedisLocker_Exclusive(t *testing.T) {
	l, _ := newRedisLocker(t)
	exerciseExclusive(t, l)
}

func TestRedisLocker_ReleaseOnlyOwnToken(t *testing.T) {
	l, mr := newRedisLocker(t)

	release, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists(DefaultKey))

	// Lease expired and someone else took it.
	mr.FastForward(DefaultTTL + time.Second)
	require.NoError(t, mr.Set(DefaultKey, "other-holder"))

	release()
	got, err := mr.Get(DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "other-holder", got)
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	l, mr := newRedisLocker(t)

	release, err := l.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	assert.False(t, mr.Exists(DefaultKey))

	release2, err := l.Acquire(context.Background())
	require.NoError(t, err)
	release2()
}

func TestNewRedisClient(t *testing.T) {
	c, err := NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Options().DB)

	c, err = NewRedisClient("localhost:6380")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", c.Options().Addr)

	_, err = NewRedisClient("")
	assert.Error(t, err)
}
