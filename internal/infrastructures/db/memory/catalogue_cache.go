// Package memory holds an in-process catalogue cache used when Redis is disabled.
package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"
	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

const catalogueKey = "catalogue"

type CatalogueCache struct {
	cache gcache.Cache
}

func NewCatalogueCache(size int) *CatalogueCache {
	if size <= 0 {
		size = 1
	}
	return &CatalogueCache{
		cache: gcache.New(size).LRU().Build(),
	}
}

func (c *CatalogueCache) GetCatalogue(_ context.Context) ([]models.ScheduleEntry, error) {
	v, err := c.cache.Get(catalogueKey)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, derr.ErrCacheMiss
		}
		return nil, fmt.Errorf("local cache get catalogue: %w", err)
	}

	entries, ok := v.([]models.ScheduleEntry)
	if !ok {
		return nil, fmt.Errorf("local cache: unexpected value type %T", v)
	}
	out := make([]models.ScheduleEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (c *CatalogueCache) SetCatalogue(_ context.Context, entries []models.ScheduleEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	stored := make([]models.ScheduleEntry, len(entries))
	copy(stored, entries)
	if err := c.cache.SetWithExpire(catalogueKey, stored, ttl); err != nil {
		return fmt.Errorf("local cache set catalogue: %w", err)
	}
	return nil
}

func (c *CatalogueCache) Invalidate(_ context.Context) error {
	c.cache.Remove(catalogueKey)
	return nil
}
