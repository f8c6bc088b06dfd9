package rtp

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// cachedStats wraps an aggregate with version metadata for cache invalidation
type cachedStats struct {
	Version string
	Stats   domain.RTPStats
}

// statsCache is an in-memory LRU of aggregates keyed by filter, with
// time-based expiration
type statsCache struct {
	lru *expirable.LRU[string, cachedStats]
}

func newStatsCache(size int, ttl time.Duration) *statsCache {
	return &statsCache{
		lru: expirable.NewLRU[string, cachedStats](size, nil, ttl),
	}
}

func cacheKey(f domain.RTPFilter) string {
	return fmt.Sprintf("%s|%s|%d", f.GameID, f.GameName, f.TimeRangeDays)
}

func (c *statsCache) Get(f domain.RTPFilter) (domain.RTPStats, bool) {
	key := cacheKey(f)
	entry, found := c.lru.Get(key)
	if !found {
		return domain.RTPStats{}, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return domain.RTPStats{}, false
	}
	return entry.Stats, true
}

func (c *statsCache) Set(f domain.RTPFilter, stats domain.RTPStats) {
	c.lru.Add(cacheKey(f), cachedStats{Version: CacheSchemaVersion, Stats: stats})
}

// Clear drops every cached aggregate
func (c *statsCache) Clear() {
	c.lru.Purge()
}
