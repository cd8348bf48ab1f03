// internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrec/internal/common/config"
	"bookrec/internal/common/database"
	"bookrec/internal/common/logger"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(database.NewRedisFromClient(client), config.Default().Cache,
		logger.NewTestLogger(t))
	return store, mr
}

func TestStore_GetMissThenHit(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, ok := store.Get(ctx, KindSearch, "googlebooks_author_rothfuss_8")
	assert.False(t, ok)

	store.Set(ctx, KindSearch, "googlebooks_author_rothfuss_8", []byte(`{"items":[]}`))

	payload, ok := store.Get(ctx, KindSearch, "googlebooks_author_rothfuss_8")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"items":[]}`), payload)
}

func TestStore_SetAppliesKindTTL(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, KindSearch, "k_search", []byte("v"))
	store.Set(ctx, KindRatings, "k_ratings", []byte("v"))
	store.Set(ctx, KindTrending, "k_trending", []byte("v"))
	store.Set(ctx, "unlisted", "k_default", []byte("v"))

	assert.Equal(t, 3600*time.Second, mr.TTL("k_search"))
	assert.Equal(t, 86400*time.Second, mr.TTL("k_ratings"))
	assert.Equal(t, 600*time.Second, mr.TTL("k_trending"))
	assert.Equal(t, 3600*time.Second, mr.TTL("k_default"))
}

func TestStore_ExpiredEntryIsAMiss(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, KindTrending, "k", []byte("v"))
	mr.FastForward(601 * time.Second)

	_, ok := store.Get(ctx, KindTrending, "k")
	assert.False(t, ok)
}

func TestStore_UnavailableCacheDegradesToMiss(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	mr.Close()

	// A down cache is a miss on reads and a no-op on writes, never an error.
	_, ok := store.Get(ctx, KindSearch, "k")
	assert.False(t, ok)
	store.Set(ctx, KindSearch, "k", []byte("v"))
}
