package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/infra/cache"
	"shareit/internal/usecase/queries"
)

func newTestCache(t *testing.T) (*cache.ItemViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cache.NewItemViewCache(client, 5*time.Minute, slogger), mr
}

func sampleView() *queries.ItemView {
	return &queries.ItemView{
		ID:          7,
		Name:        "drill",
		Description: "cordless drill",
		Available:   true,
		LastBooking: &queries.BookingShortView{ID: 3, BookerID: 11},
		Comments:    []queries.CommentView{{ID: 1, Text: "works", AuthorName: "alice"}},
	}
}

func TestItemViewCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	_, ok := c.Get(ctx, 7, true)
	assert.False(t, ok)

	view := sampleView()
	c.Set(ctx, 7, true, view)

	got, ok := c.Get(ctx, 7, true)
	require.True(t, ok)
	assert.Equal(t, view, got)

	// owner and non-owner views are distinct entries
	_, ok = c.Get(ctx, 7, false)
	assert.False(t, ok)
}

func TestItemViewCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	c.Set(ctx, 7, true, sampleView())
	c.Set(ctx, 7, false, sampleView())

	c.InvalidateItem(ctx, 7)

	_, ok := c.Get(ctx, 7, true)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 7, false)
	assert.False(t, ok)
}

func TestItemViewCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	c.Set(ctx, 7, true, sampleView())
	mr.FastForward(10 * time.Minute)

	_, ok := c.Get(ctx, 7, true)
	assert.False(t, ok)
}

func TestItemViewCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("item:7:view:owner=true", "not json"))

	_, ok := c.Get(ctx, 7, true)
	assert.False(t, ok)
}

func TestItemViewCacheDisabled(t *testing.T) {
	ctx := context.Background()
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.NewItemViewCache(nil, time.Minute, slogger)

	c.Set(ctx, 7, true, sampleView())
	_, ok := c.Get(ctx, 7, true)
	assert.False(t, ok)
	c.InvalidateItem(ctx, 7)
}
