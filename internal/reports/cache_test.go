package reports

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type cachedDoc struct {
	Total string `json:"total"`
}

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCache(client, time.Minute, logger), mr
}

func TestCacheFetchStoresAndReuses(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports:tb", "1", "2026-01-01..2026-01-31")
	require.NoError(t, err)

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return cachedDoc{Total: "100.00"}, nil
	}

	var first cachedDoc
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	require.Equal(t, "100.00", first.Total)
	require.Equal(t, 1, loads)

	var second cachedDoc
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	require.Equal(t, "100.00", second.Total)
	require.Equal(t, 1, loads, "second fetch is served from redis")
}

func TestCacheBustChangesKeys(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	before, err := cache.BuildKey(ctx, "reports:bs", "1")
	require.NoError(t, err)

	cache.Bust(ctx)

	after, err := cache.BuildKey(ctx, "reports:bs", "1")
	require.NoError(t, err)
	require.NotEqual(t, before, after, "busted entries stop being addressable")

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return cachedDoc{Total: "1.00"}, nil
	}
	var doc cachedDoc
	require.NoError(t, cache.FetchJSON(ctx, before, &doc, loader))
	require.NoError(t, cache.FetchJSON(ctx, after, &doc, loader))
	require.Equal(t, 2, loads)
}

func TestCacheNilClientFallsThrough(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports:is", "1")
	require.NoError(t, err)
	require.Equal(t, "reports:is:1", key)

	loads := 0
	var doc cachedDoc
	loader := func(context.Context) (interface{}, error) {
		loads++
		return cachedDoc{Total: "5.00"}, nil
	}
	require.NoError(t, cache.FetchJSON(ctx, key, &doc, loader))
	require.NoError(t, cache.FetchJSON(ctx, key, &doc, loader))
	require.Equal(t, 2, loads, "no client means every fetch rebuilds")
	require.Equal(t, "5.00", doc.Total)

	cache.Bust(ctx)
}

func TestCacheEntriesExpire(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports:tb", "1")
	require.NoError(t, err)

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return cachedDoc{Total: "9.00"}, nil
	}
	var doc cachedDoc
	require.NoError(t, cache.FetchJSON(ctx, key, &doc, loader))

	mr.FastForward(2 * time.Minute)

	require.NoError(t, cache.FetchJSON(ctx, key, &doc, loader))
	require.Equal(t, 2, loads)
}
