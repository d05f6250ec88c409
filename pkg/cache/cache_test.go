package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSummary struct {
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Rate   float64 `json:"rate"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, MatchesKey(1)+":all", cachedSummary{Wins: 3, Losses: 1, Rate: 75}, time.Minute))

	var got cachedSummary
	found, err := c.Get(ctx, MatchesKey(1)+":all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedSummary{Wins: 3, Losses: 1, Rate: 75}, got)

	found, err = c.Get(ctx, MatchesKey(2)+":all", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))
	now = now.Add(2 * time.Second)

	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_InvalidateByResource(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, MatchesKey(1)+":all", 1, 0))
	require.NoError(t, c.Set(ctx, MatchKey(1, 9), 2, 0))
	require.NoError(t, c.Set(ctx, PlayersKey(1), 3, 0))
	require.NoError(t, c.Set(ctx, MatchesKey(2)+":all", 4, 0))

	require.NoError(t, c.Invalidate(ctx, MatchesKey(1)))

	var v int
	found, _ := c.Get(ctx, MatchesKey(1)+":all", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, MatchKey(1, 9), &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, PlayersKey(1), &v)
	assert.True(t, found)
	found, _ = c.Get(ctx, MatchesKey(2)+":all", &v)
	assert.True(t, found)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	var v int
	found, err := c.Get(context.Background(), "x", &v)
	assert.NoError(t, err)
	assert.False(t, found)
}
