package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authzkit/authzkit/pkg/cache"
	"github.com/authzkit/authzkit/pkg/scopes"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	directives := []scopes.Directive{
		scopes.MustParse("allow:api:iam:users:*"),
		scopes.MustParse("deny:api:iam:users:13"),
	}

	t.Run("miss on unknown user", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCache(time.Minute)

		_, ok, err := c.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCache(time.Minute)
		userID := uuid.New()

		require.NoError(t, c.Set(ctx, userID, directives))

		got, ok, err := c.Get(ctx, userID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, scopes.EqualDirectives(directives, got))
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCache(time.Minute)
		userID := uuid.New()

		require.NoError(t, c.Set(ctx, userID, directives))
		require.NoError(t, c.Invalidate(ctx, userID))

		_, ok, err := c.Get(ctx, userID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCache(time.Nanosecond)
		userID := uuid.New()

		require.NoError(t, c.Set(ctx, userID, directives))
		time.Sleep(time.Millisecond)

		_, ok, err := c.Get(ctx, userID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCache(0)
		userID := uuid.New()

		require.NoError(t, c.Set(ctx, userID, directives))

		_, ok, err := c.Get(ctx, userID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("cached slice is a copy", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCache(time.Minute)
		userID := uuid.New()

		require.NoError(t, c.Set(ctx, userID, directives))

		got, _, err := c.Get(ctx, userID)
		require.NoError(t, err)
		got[0] = scopes.MustParse("allow:tampered")

		again, _, err := c.Get(ctx, userID)
		require.NoError(t, err)
		assert.True(t, scopes.EqualDirectives(directives, again))
	})
}
