// Package cache holds pre-serialized API responses for a short TTL so a
// burst of identical requests does not hammer the upstream feeds.
// Nothing here outlives the TTL; the service keeps no durable state.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a TTL'd response cache keyed by canonical query string.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Type      string
	TTL       time.Duration
	RedisAddr string
}

// New builds the configured cache backend: in-process memory, Redis, or
// a no-op store that disables caching entirely.
func New(cfg Config) (Store, error) {
	if cfg.TTL == 0 {
		cfg.TTL = 2 * time.Minute
	}

	switch cfg.Type {
	case "", "memory":
		return newMemoryStore(cfg.TTL), nil
	case "redis":
		return newRedisStore(cfg.RedisAddr, cfg.TTL), nil
	case "none":
		return nopStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

type nopStore struct{}

func (nopStore) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (nopStore) Set(context.Context, string, []byte)        {}
func (nopStore) Close() error                               { return nil }
