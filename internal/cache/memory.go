package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *gocache.Cache
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{cache: gocache.New(ttl, ttl/2)}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	value, found := m.cache.Get(key)
	if !found {
		return nil, false
	}
	if bytes, ok := value.([]byte); ok {
		return bytes, true
	}
	return nil, false
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte) {
	m.cache.Set(key, value, gocache.DefaultExpiration)
}

func (m *memoryStore) Close() error {
	m.cache.Flush()
	return nil
}
