package services_test

import (
	"context"
	"testing"
	"time"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/cache"
	"laptopstore/internal/models"
	"laptopstore/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItemMergesQuantities(t *testing.T) {
	store, _ := newTestStore(t)
	service := services.NewCartService(store, nil)
	ctx := context.Background()
	user := seedUser(t, store)
	item := seedItem(t, store, "XPS 13", "1299.00")

	entry, created, err := service.AddItem(ctx, user.ID, item.ID, 1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, entry.Quantity)

	entry, created, err = service.AddItem(ctx, user.ID, item.ID, 2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, entry.Quantity)

	entries, err := service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
}

func TestCartService_AddItemRejectsBadInput(t *testing.T) {
	store, _ := newTestStore(t)
	service := services.NewCartService(store, nil)
	ctx := context.Background()
	user := seedUser(t, store)
	item := seedItem(t, store, "XPS 13", "1299.00")

	_, _, err := service.AddItem(ctx, user.ID, item.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)

	_, _, err = service.AddItem(ctx, user.ID, "missing-item", 1)
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))

	require.NoError(t, store.Items().Delete(ctx, item.ID))
	_, _, err = service.AddItem(ctx, user.ID, item.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)

	entries, err := service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	store, _ := newTestStore(t)
	service := services.NewCartService(store, nil)
	ctx := context.Background()
	user := seedUser(t, store)
	a := seedItem(t, store, "XPS 13", "1299.00")
	b := seedItem(t, store, "Legion 5", "1500.00")

	_, _, err := service.AddItem(ctx, user.ID, a.ID, 1)
	require.NoError(t, err)
	_, _, err = service.AddItem(ctx, user.ID, b.ID, 1)
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem(ctx, user.ID, a.ID))
	assert.ErrorIs(t, service.RemoveItem(ctx, user.ID, a.ID), apperrors.ErrCartEntryNotFound)

	entries, err := service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, b.ID, entries[0].ItemID)

	require.NoError(t, service.ClearCart(ctx, user.ID))
	require.NoError(t, service.ClearCart(ctx, user.ID))
	entries, err = service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartService_CartsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	service := services.NewCartService(store, nil)
	ctx := context.Background()
	ann := seedUser(t, store)
	bob := seedUser(t, store)
	item := seedItem(t, store, "XPS 13", "1299.00")

	_, _, err := service.AddItem(ctx, ann.ID, item.ID, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, service.RemoveItem(ctx, bob.ID, item.ID), apperrors.ErrCartEntryNotFound)
	require.NoError(t, service.ClearCart(ctx, bob.ID))

	entries, err := service.GetCart(ctx, ann.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCartService_CacheIsInvalidatedOnWrite(t *testing.T) {
	store, _ := newTestStore(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cartCache := cache.NewRedisCache(client, 10*time.Minute)

	service := services.NewCartService(store, cartCache)
	ctx := context.Background()
	user := seedUser(t, store)
	item := seedItem(t, store, "XPS 13", "1299.00")

	_, _, err := service.AddItem(ctx, user.ID, item.ID, 1)
	require.NoError(t, err)

	entries, err := service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	cached, err := cartCache.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	_, _, err = service.AddItem(ctx, user.ID, item.ID, 4)
	require.NoError(t, err)
	_, err = cartCache.Get(ctx, user.ID)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	entries, err = service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
}

// interleavingCache runs beforeSet once, between the database read of a
// cache fill and the write to Redis.
type interleavingCache struct {
	*cache.RedisCache
	beforeSet func()
}

func (c *interleavingCache) Set(ctx context.Context, userID string, version int64, entries []models.CartEntry) error {
	if c.beforeSet != nil {
		fn := c.beforeSet
		c.beforeSet = nil
		fn()
	}
	return c.RedisCache.Set(ctx, userID, version, entries)
}

func TestCartService_CheckoutDuringCacheFillLeavesNoStaleCart(t *testing.T) {
	store, _ := newTestStore(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cartCache := &interleavingCache{RedisCache: cache.NewRedisCache(client, 10*time.Minute)}
	carts := services.NewCartService(store, cartCache)
	orders := services.NewOrderService(store, cartCache, nil)
	ctx := context.Background()
	user := seedUser(t, store)
	item := seedItem(t, store, "XPS 13", "1299.00")

	_, _, err := carts.AddItem(ctx, user.ID, item.ID, 2)
	require.NoError(t, err)

	var order *models.Order
	cartCache.beforeSet = func() {
		order, err = orders.Checkout(ctx, user.ID)
		require.NoError(t, err)
	}

	entries, err := carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	require.NotNil(t, order)

	_, err = cartCache.Get(ctx, user.ID)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	entries, err = carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartService_CacheOutageFallsBackToDatabase(t *testing.T) {
	store, _ := newTestStore(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	service := services.NewCartService(store, cache.NewRedisCache(client, time.Minute))
	ctx := context.Background()
	user := seedUser(t, store)
	item := seedItem(t, store, "XPS 13", "1299.00")

	mr.Close()

	_, _, err := service.AddItem(ctx, user.ID, item.ID, 1)
	require.NoError(t, err)
	entries, err := service.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
