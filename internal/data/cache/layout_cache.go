package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"floor-layout/internal/data/entity"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const activeKeyPrefix = "floor:layout:active:"

// LayoutCache holds each tenant's active layout. Get returns nil, nil on a miss.
type LayoutCache interface {
	Get(ctx context.Context, tenantID string) (*entity.FloorLayout, error)
	Set(ctx context.Context, layout *entity.FloorLayout) error
	Invalidate(ctx context.Context, tenantID string) error
}

type redisLayoutCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisLayoutCache(client *redis.Client, ttl time.Duration, log *zap.Logger) LayoutCache {
	return &redisLayoutCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "layout")),
	}
}

func activeKey(tenantID string) string {
	return activeKeyPrefix + tenantID
}

func (c *redisLayoutCache) Get(ctx context.Context, tenantID string) (*entity.FloorLayout, error) {
	val, err := c.client.Get(ctx, activeKey(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached layout: %w", err)
	}

	var layout entity.FloorLayout
	if err := json.Unmarshal(val, &layout); err != nil {
		return nil, fmt.Errorf("unmarshal cached layout: %w", err)
	}
	return &layout, nil
}

func (c *redisLayoutCache) Set(ctx context.Context, layout *entity.FloorLayout) error {
	data, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}

	if err := c.client.Set(ctx, activeKey(layout.TenantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached layout: %w", err)
	}

	c.log.Debug("Cached active layout",
		zap.String("tenant_id", layout.TenantID),
		zap.String("layout_id", layout.ID.String()),
	)
	return nil
}

func (c *redisLayoutCache) Invalidate(ctx context.Context, tenantID string) error {
	if err := c.client.Del(ctx, activeKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached layout: %w", err)
	}
	return nil
}

type noopLayoutCache struct{}

// NewNoopLayoutCache is used when Redis is not configured. Every Get misses.
func NewNoopLayoutCache() LayoutCache {
	return noopLayoutCache{}
}

func (noopLayoutCache) Get(context.Context, string) (*entity.FloorLayout, error) { return nil, nil }
func (noopLayoutCache) Set(context.Context, *entity.FloorLayout) error            { return nil }
func (noopLayoutCache) Invalidate(context.Context, string) error                 { return nil }
