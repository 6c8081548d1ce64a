package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// compare-and-delete so an expired holder never releases someone else's lock
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisConfig struct {
	TTL     time.Duration
	Retries int
	Backoff time.Duration
}

// RedisLocker holds SET NX PX locks so several processes sharing one database
// serialize on the same keys.
type RedisLocker struct {
	client redis.UniversalClient
	cfg    RedisConfig
}

func NewRedisLocker(client redis.UniversalClient, cfg RedisConfig) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Second
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 100 * time.Millisecond
	}
	return &RedisLocker{client: client, cfg: cfg}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	var lastErr error
	for i := 0; i < l.cfg.Retries; i++ {
		ok, err := l.client.SetNX(ctx, key, token, l.cfg.TTL).Result()
		if err != nil {
			lastErr = err
		} else if ok {
			return func() {
				// release must run even if the caller's ctx was cancelled
				releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}, nil
		}

		if i == l.cfg.Retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.cfg.Backoff):
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNotAcquired
}
