package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/palstyle/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	c := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return c, mr, cleanup
}

func testCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items: []domain.LineItem{
			{ProductID: "PLS-TSH-105", Size: domain.SizeM, Quantity: 2, Price: 599},
			{ProductID: "PLS-HOD-112", Size: domain.SizeL, Quantity: 1, Price: 899},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGet_Success(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := testCart("user123")
	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey("user123"), string(cartJSON))

	result, err := c.Get(context.Background(), "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", result.UserID)
	require.Len(t, result.Items, 2)
	assert.Equal(t, domain.SizeM, result.Items[0].Size)
}

func TestGet_Miss(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := c.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_CorruptPayload(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("user123"), "{not json")

	result, err := c.Get(context.Background(), "user123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestSet_RoundTrip(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, c.Set(context.Background(), "user123", testCart("user123")))
	assert.True(t, mr.Exists(cacheKey("user123")))

	result, err := c.Get(context.Background(), "user123")
	require.NoError(t, err)
	assert.Equal(t, 2, result.ItemCount())
}

func TestSet_AppliesTTL(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, c.Set(context.Background(), "user123", testCart("user123")))

	ttl := mr.TTL(cacheKey("user123"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, c.Set(context.Background(), "user123", testCart("user123")))
	require.NoError(t, c.Delete(context.Background(), "user123"))
	assert.False(t, mr.Exists(cacheKey("user123")))
}
