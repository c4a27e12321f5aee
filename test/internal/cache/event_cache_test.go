package cache

import (
	"context"
	"testing"
	"time"

	"event-ticketing/internal/cache"
	"event-ticketing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedEvents() []*model.Event {
	minPrice := decimal.NewFromInt(45)
	return []*model.Event{
		{ID: 1, Title: "Jazz Night", Location: "Blue Note", StartDateTime: time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second), IsPublished: true, MinPrice: &minPrice},
		{ID: 2, Title: "Rock Festival", Location: "Stadium", StartDateTime: time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second), IsPublished: true},
	}
}

func TestEventCache_GetUpcoming(t *testing.T) {
	ctx := context.Background()
	eventCache := cache.NewEventCache(getTestRdb())
	clearRedis(ctx)
	t.Cleanup(func() {
		clearRedis(ctx)
	})

	t.Run("MissReturnsNil", func(t *testing.T) {
		defer clearRedis(ctx)

		events, err := eventCache.GetUpcoming(ctx, 5)

		require.NoError(t, err)
		assert.Nil(t, events)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		defer clearRedis(ctx)

		seeded := cachedEvents()
		require.NoError(t, eventCache.SetUpcoming(ctx, 5, seeded))

		events, err := eventCache.GetUpcoming(ctx, 5)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, 1, events[0].ID)
		assert.Equal(t, "Jazz Night", events[0].Title)
		require.NotNil(t, events[0].MinPrice)
		assert.True(t, decimal.NewFromInt(45).Equal(*events[0].MinPrice))
		assert.Nil(t, events[1].MinPrice)
	})

	t.Run("LimitsAreSeparateKeys", func(t *testing.T) {
		defer clearRedis(ctx)

		require.NoError(t, eventCache.SetUpcoming(ctx, 5, cachedEvents()))

		events, err := eventCache.GetUpcoming(ctx, 20)

		require.NoError(t, err)
		assert.Nil(t, events)
	})
}

func TestEventCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	eventCache := cache.NewEventCache(getTestRdb())
	clearRedis(ctx)
	t.Cleanup(func() {
		clearRedis(ctx)
	})

	t.Run("DropsEveryLimit", func(t *testing.T) {
		defer clearRedis(ctx)

		require.NoError(t, eventCache.SetUpcoming(ctx, 5, cachedEvents()))
		require.NoError(t, eventCache.SetUpcoming(ctx, 20, cachedEvents()))

		require.NoError(t, eventCache.Invalidate(ctx))

		for _, limit := range []int{5, 20} {
			events, err := eventCache.GetUpcoming(ctx, limit)
			require.NoError(t, err)
			assert.Nil(t, events)
		}
	})

	t.Run("EmptyCacheIsFine", func(t *testing.T) {
		defer clearRedis(ctx)

		assert.NoError(t, eventCache.Invalidate(ctx))
	})
}
