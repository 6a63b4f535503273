package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/utils"
	"go.uber.org/zap"
)

// KeyPreviewLength is how many runes of each key CacheStats shows
const KeyPreviewLength = 40

// MemoryCache is an in-memory implementation of the ScheduleCache interface.
// Expired entries are swept on every access rather than by a background task.
type MemoryCache struct {
	entries map[string]*core.CacheEntry
	mu      sync.Mutex
	clock   core.Clock
	logger  *zap.Logger
}

// NewMemoryCache creates a new in-memory schedule cache
func NewMemoryCache(clock core.Clock, logger *zap.Logger) *MemoryCache {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryCache{
		entries: make(map[string]*core.CacheEntry),
		clock:   clock,
		logger:  logger,
	}
}

// Get retrieves the schedule cached for key
func (c *MemoryCache) Get(key string) (core.Schedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Schedule, true
}

// Set stores a schedule until expiresAt
func (c *MemoryCache) Set(key string, schedule core.Schedule, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep()
	c.entries[key] = &core.CacheEntry{
		Key:       key,
		Schedule:  schedule,
		ExpiresAt: expiresAt,
	}
}

// Clear drops every entry
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleared := len(c.entries)
	c.entries = make(map[string]*core.CacheEntry)
	c.logger.Debug("Cleared schedule cache", zap.Int("cleared_count", cleared))
}

// Stats reports the live entries with shortened keys
func (c *MemoryCache) Stats() core.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		keys[i] = utils.Preview(key, KeyPreviewLength)
	}

	return core.CacheStats{
		Size: len(c.entries),
		Keys: keys,
	}
}

// sweep removes expired entries; callers hold mu
func (c *MemoryCache) sweep() {
	now := c.clock.Now()
	expiredCount := 0

	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expiredCount))
	}
}
