package cache

import (
	"context"
	"testing"
	"time"

	"floor-layout/internal/data/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, LayoutCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisLayoutCache(client, time.Minute, zap.NewNop())
}

func testLayout(tenantID string) *entity.FloorLayout {
	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	return &entity.FloorLayout{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: at, UpdatedAt: at},
		TenantID: tenantID,
		Status:   entity.LayoutStatusActive,
		Data:     []byte(`{"tables":[{"id":"t1"}],"zones":[]}`),
		Metadata: []byte(`{"version":2}`),
	}
}

func TestLayoutCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)

	got, err := c.Get(ctx, "bistro")
	require.NoError(t, err)
	assert.Nil(t, got, "miss on an empty cache")

	layout := testLayout("bistro")
	require.NoError(t, c.Set(ctx, layout))
	assert.True(t, mr.Exists("floor:layout:active:bistro"))
	assert.Equal(t, time.Minute, mr.TTL("floor:layout:active:bistro"))

	got, err = c.Get(ctx, "bistro")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, layout.ID, got.ID)
	assert.Equal(t, entity.LayoutStatusActive, got.Status)
	assert.JSONEq(t, string(layout.Data), string(got.Data))
	assert.True(t, layout.CreatedAt.Equal(got.CreatedAt))
}

func TestLayoutCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)

	require.NoError(t, c.Set(ctx, testLayout("bistro")))
	require.NoError(t, c.Set(ctx, testLayout("cafe")))

	require.NoError(t, c.Invalidate(ctx, "bistro"))
	assert.False(t, mr.Exists("floor:layout:active:bistro"))
	assert.True(t, mr.Exists("floor:layout:active:cafe"))

	got, err := c.Get(ctx, "bistro")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLayoutCacheExpires(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)

	require.NoError(t, c.Set(ctx, testLayout("bistro")))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "bistro")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLayoutCacheReportsBackendErrors(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)
	mr.Close()

	_, err := c.Get(ctx, "bistro")
	assert.Error(t, err)
}

func TestNoopLayoutCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopLayoutCache()

	require.NoError(t, c.Set(ctx, testLayout("bistro")))
	got, err := c.Get(ctx, "bistro")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx, "bistro"))
}
