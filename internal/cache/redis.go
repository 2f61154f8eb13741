package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisStore(addr string, ttl time.Duration) *redisStore {
	return &redisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", key, "error", err)
	}
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
