//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, RedisConfig{TTL: 2 * time.Second, Retries: 2, Backoff: 10 * time.Millisecond})

	release, err := l.Acquire(ctx, "lock:product:1")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "lock:product:1")
	assert.ErrorIs(t, err, ErrNotAcquired)

	release()

	release2, err := l.Acquire(ctx, "lock:product:1")
	require.NoError(t, err)
	release2()

	exists, err := client.Exists(ctx, "lock:product:1").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
