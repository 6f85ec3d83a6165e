package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/metrics"
)

const catalogCacheKey = "catalog:services"

// CatalogCache provides read-through caching for the public services list:
// Redis → PostgreSQL. Mutations must call Invalidate so the next read sees
// the new catalog.
type CatalogCache struct {
	rdb      goredis.Cmdable
	services domain.ServiceRepository
	ttl      time.Duration
}

// NewCatalogCache creates a read-through catalog cache over the given repository.
func NewCatalogCache(rdb goredis.Cmdable, services domain.ServiceRepository, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, services: services, ttl: ttl}
}

// List returns the catalog in canonical order, from Redis when possible.
// Redis failures fall through to PostgreSQL; the cache is best-effort.
func (c *CatalogCache) List(ctx context.Context) ([]domain.Service, error) {
	data, err := c.rdb.Get(ctx, catalogCacheKey).Bytes()
	if err == nil {
		var services []domain.Service
		if err := json.Unmarshal(data, &services); err != nil {
			slog.Warn("Failed to unmarshal cached catalog, falling through to PostgreSQL", "error", err)
		} else {
			metrics.CatalogCacheHits.WithLabelValues("redis").Inc()
			return services, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		slog.Warn("Redis catalog cache GET failed, falling through to PostgreSQL", "error", err)
	}

	services, err := c.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog list failed: %w", err)
	}
	metrics.CatalogCacheHits.WithLabelValues("postgres").Inc()

	if encoded, err := json.Marshal(services); err == nil {
		if err := c.rdb.Set(ctx, catalogCacheKey, encoded, c.ttl).Err(); err != nil {
			slog.Warn("Failed to populate Redis catalog cache", "error", err)
		}
	}

	return services, nil
}

// Invalidate drops the cached catalog. Best-effort: a failure is logged,
// the stale entry then ages out via TTL.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		slog.Warn("Failed to invalidate catalog cache", "error", err)
	}
}
