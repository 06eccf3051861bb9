package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pillulu/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKey is the Redis key guarding reminder evaluation.
	DefaultKey = "pillulu:lock:send_reminders"
	// DefaultTTL bounds how long a crashed holder can block others.
	DefaultTTL = 2 * time.Minute

	retryInterval = 100 * time.Millisecond
)

// Delete the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes evaluations across processes with SET NX PX.
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    logger.Logger
}

// NewRedisClient parses a redis:// URL, falling back to a bare host:port address.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		if url == "" {
			return nil, fmt.Errorf("empty redis url: %w", err)
		}
		opts = &redis.Options{Addr: url}
	}
	return redis.NewClient(opts), nil
}

// NewRedisLocker creates a Locker on the given client.
func NewRedisLocker(client *redis.Client, key string, ttl time.Duration, log logger.Logger) *RedisLocker {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: client, key: key, ttl: ttl, log: log}
}

// Acquire polls until the key is set by us or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("🔴 ERROR: failed to acquire redis lock %s: %w", l.key, err)
		}
		if ok {
			return func() { l.release(token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(token string) {
	// Release even if the caller's context is already cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
		l.log.Error(fmt.Sprintf("Failed to release redis lock %s", l.key), err)
	}
}
