package achievements

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const catalogCacheSizeBytes = 1024 * 1024

// CachedCatalog puts a freecache TTL cache in front of a catalog source.
// The catalog only changes on reseeding, so serving slightly stale entries
// is fine.
type CachedCatalog struct {
	source        catalogSource
	cache         *freecache.Cache
	expireSeconds int
}

func NewCachedCatalog(source catalogSource, expireSeconds int) *CachedCatalog {
	return &CachedCatalog{
		source:        source,
		cache:         freecache.NewCache(catalogCacheSizeBytes),
		expireSeconds: expireSeconds,
	}
}

func (c *CachedCatalog) ListAll(ctx context.Context) ([]Achievement, error) {
	return c.cachedList(ctx, "catalog::all", func(ctx context.Context) ([]Achievement, error) {
		return c.source.ListAll(ctx)
	})
}

func (c *CachedCatalog) ListByMetric(ctx context.Context, metricType string) ([]Achievement, error) {
	cacheKey := fmt.Sprintf("catalog::%s", metricType)
	return c.cachedList(ctx, cacheKey, func(ctx context.Context) ([]Achievement, error) {
		return c.source.ListByMetric(ctx, metricType)
	})
}

func (c *CachedCatalog) cachedList(
	ctx context.Context,
	cacheKey string,
	load func(ctx context.Context) ([]Achievement, error),
) ([]Achievement, error) {
	if cachedBytes, err := c.cache.Get([]byte(cacheKey)); err == nil {
		var catalog []Achievement
		if err := json.Unmarshal(cachedBytes, &catalog); err == nil {
			log.Tracef("achievement catalog served from cache: %s", cacheKey)
			return catalog, nil
		} else {
			log.Errorf("failed to unmarshal cached achievement catalog %s: %s", cacheKey, err)
		}
	}

	catalog, err := load(ctx)
	if err != nil {
		return nil, err
	}

	catalogBytes, err := json.Marshal(catalog)
	if err != nil {
		log.Errorf("failed to marshal achievement catalog for cache %s: %s", cacheKey, err)
		return catalog, nil
	}
	if err := c.cache.Set([]byte(cacheKey), catalogBytes, c.expireSeconds); err != nil {
		log.Errorf("failed to write achievement catalog cache %s: %s", cacheKey, err)
	}

	return catalog, nil
}
