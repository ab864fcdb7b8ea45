package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, hit, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Set(ctx, "key", "value", time.Hour))

	value, hit, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", value)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", -time.Second))

	_, hit, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStore_DeleteByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "products", "all", time.Hour))
	require.NoError(t, store.Set(ctx, "products:1:10", "page", time.Hour))
	require.NoError(t, store.Set(ctx, "product:abc", "detail", time.Hour))

	require.NoError(t, store.DeleteByPrefix(ctx, "products"))

	_, hit, _ := store.Get(ctx, "products")
	assert.False(t, hit)
	_, hit, _ = store.Get(ctx, "products:1:10")
	assert.False(t, hit)

	// The detail namespace has its own prefix and survives
	_, hit, _ = store.Get(ctx, "product:abc")
	assert.True(t, hit)
}
