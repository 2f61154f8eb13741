package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store, err := New(Config{Type: "memory", TTL: time.Minute})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, ok := store.Get(ctx, "missing")
	assert.False(t, ok)

	store.Set(ctx, "key", []byte("value"))
	got, ok := store.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store, err := New(Config{Type: "memory", TTL: 20 * time.Millisecond})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	store.Set(ctx, "key", []byte("value"))
	time.Sleep(50 * time.Millisecond)

	_, ok := store.Get(ctx, "key")
	assert.False(t, ok)
}

func TestNopStore(t *testing.T) {
	store, err := New(Config{Type: "none"})
	require.NoError(t, err)

	ctx := context.Background()
	store.Set(ctx, "key", []byte("value"))
	_, ok := store.Get(ctx, "key")
	assert.False(t, ok)
	assert.NoError(t, store.Close())
}

func TestNew_DefaultsToMemory(t *testing.T) {
	store, err := New(Config{})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	store.Set(ctx, "key", []byte("value"))
	_, ok := store.Get(ctx, "key")
	assert.True(t, ok)
}

func TestNew_UnsupportedType(t *testing.T) {
	_, err := New(Config{Type: "carrier-pigeon"})
	assert.Error(t, err)
}
