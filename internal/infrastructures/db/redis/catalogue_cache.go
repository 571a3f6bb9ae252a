package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"github.com/redis/go-redis/v9"
)

const catalogueKey = "board:catalogue"

type CatalogueCache struct {
	redis *redis.Client
}

func NewCatalogueCache(redis *redis.Client) *CatalogueCache {
	return &CatalogueCache{redis: redis}
}

// Entries are cached in their stored row form so the cache shares the storage boundary codec.
func (c *CatalogueCache) GetCatalogue(ctx context.Context) ([]models.ScheduleEntry, error) {
	data, err := c.redis.Get(ctx, catalogueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get catalogue: %w", err)
	}

	var rows []codec.RawSchedule
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal cached catalogue: %w", err)
	}

	entries := make([]models.ScheduleEntry, 0, len(rows))
	for _, raw := range rows {
		entry, err := codec.DecodeSchedule(raw)
		if err != nil {
			return nil, fmt.Errorf("decode cached schedule %s: %w", raw.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *CatalogueCache) SetCatalogue(ctx context.Context, entries []models.ScheduleEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	rows := make([]codec.RawSchedule, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, codec.EncodeSchedule(e))
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal catalogue for cache: %w", err)
	}

	if err := c.redis.Set(ctx, catalogueKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set catalogue: %w", err)
	}
	return nil
}

func (c *CatalogueCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, catalogueKey).Err(); err != nil {
		return fmt.Errorf("redis del catalogue: %w", err)
	}
	return nil
}
