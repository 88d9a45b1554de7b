package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "answer", 42, time.Minute))

	var got int
	ok, err := c.Get(ctx, "answer", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	var got int
	ok, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ephemeral", "value", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var got string
	ok, err := c.Get(ctx, "ephemeral", &got)
	require.NoError(t, err)
	assert.False(t, ok, "expected entry to expire")
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Clear(ctx))

	var got int
	ok, _ := c.Get(ctx, "a", &got)
	assert.False(t, ok)
}

func TestCached_MemoizesComputation(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	calls := 0
	compute := func() (string, error) {
		calls++
		return "result", nil
	}

	first, err := Cached(ctx, c, "key", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "result", first)

	second, err := Cached(ctx, c, "key", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "result", second)

	assert.Equal(t, 1, calls, "expected the second call to be served from cache")
}

func TestCached_RecomputesAfterExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	calls := 0
	compute := func() (int, error) {
		calls++
		return calls, nil
	}

	_, err := Cached(ctx, c, "key", 10*time.Millisecond, compute)
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)

	got, err := Cached(ctx, c, "key", 10*time.Millisecond, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestCached_PropagatesComputeError(t *testing.T) {
	c := NewMemoryCache()

	wantErr := errors.New("boom")
	_, err := Cached(context.Background(), c, "key", time.Minute, func() (int, error) {
		return 0, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// A failed computation must not be cached.
	got, err := Cached(context.Background(), c, "key", time.Minute, func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
