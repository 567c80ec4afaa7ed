package plex

import (
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long fetched item metadata is reused
// before going back to the server.
const DefaultCacheTTL = 30 * time.Minute

type cacheEntry struct {
	item    *MediaItem
	expires time.Time
}

// MetadataCache is a TTL cache of fully-fetched items, keyed by rating
// key. Batch runs read through it during the fetch phase and invalidate
// entries after changing an item's active stream.
type MetadataCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewMetadataCache creates a cache with the given TTL.
func NewMetadataCache(ttl time.Duration) *MetadataCache {
	return &MetadataCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns a cached item, or nil when absent or expired.
func (c *MetadataCache) Get(ratingKey string) *MediaItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[ratingKey]
	if !ok || time.Now().After(entry.expires) {
		return nil
	}
	return entry.item
}

// Set stores an item.
func (c *MetadataCache) Set(ratingKey string, item *MediaItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[ratingKey] = cacheEntry{
		item:    item,
		expires: time.Now().Add(c.ttl),
	}
}

// Invalidate drops an item so the next read reflects server state.
func (c *MetadataCache) Invalidate(ratingKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ratingKey)
}
