package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))

		var got payload
		found, err := GetJSON(ctx, "k", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, payload{Name: "a", Count: 2}, got)
	})

	t.Run("miss reports not found", func(t *testing.T) {
		var got payload
		found, err := GetJSON(ctx, "absent", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAside(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fresh", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)

	// Second read is served from the cache.
	var second payload
	require.NoError(t, Aside(ctx, "aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestInvalidateProperty(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PropertyKey(7), payload{Name: "seven"}, time.Minute))
	require.NoError(t, SetJSON(ctx, ActiveListingsKey, payload{Name: "page"}, time.Minute))

	InvalidateProperty(ctx, 7)

	assert.False(t, mr.Exists(PropertyKey(7)))
	assert.False(t, mr.Exists(ActiveListingsKey))
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", payload{}, time.Minute))

	var got payload
	found, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Aside always falls through to fetch.
	calls := 0
	var out payload
	require.NoError(t, Aside(ctx, "k", &out, time.Minute, func() error {
		calls++
		out.Name = "direct"
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "direct", out.Name)
}
