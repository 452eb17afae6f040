package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok := store.Get(ctx, "missing")
	assert.False(t, ok)

	store.Set(ctx, "key", []byte(`{"a":1}`), time.Minute)
	got, ok := store.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "short", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, ok := store.Get(ctx, "short")
	assert.False(t, ok)
}

func TestMemoizeCachesResult(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	calls := 0
	fn := func() ([]string, error) {
		calls++
		return []string{"HBL", "UBL"}, nil
	}

	got, cached, err := Memoize(ctx, store, "stocks", time.Minute, fn)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, []string{"HBL", "UBL"}, got)

	got, cached, err = Memoize(ctx, store, "stocks", time.Minute, fn)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, []string{"HBL", "UBL"}, got)
	assert.Equal(t, 1, calls)
}

func TestMemoizeDoesNotCacheErrors(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("portal down")
	calls := 0

	_, cached, err := Memoize(ctx, store, "k", time.Minute, func() (int, error) {
		calls++
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, cached)

	got, cached, err := Memoize(ctx, store, "k", time.Minute, func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
}

func TestMemoizeCorruptEntryFallsThrough(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Set(ctx, "k", []byte("not json"), time.Minute)

	got, cached, err := Memoize(ctx, store, "k", time.Minute, func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 7, got)
}
