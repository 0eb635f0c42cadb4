package catalogue

import (
	"sync"
	"time"

	"github.com/skiphire/skip-browser/internal/domain/models"
)

type cacheEntry struct {
	skips     []models.Skip
	fetchedAt time.Time
}

// locationCache holds catalogue results keyed by the exact (postcode, area)
// pair. Entries die with the process; there is no persistence.
type locationCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	store map[string]cacheEntry
}

func newLocationCache(ttl time.Duration) *locationCache {
	return &locationCache{
		ttl:   ttl,
		store: make(map[string]cacheEntry),
	}
}

func (c *locationCache) get(key string) ([]models.Skip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.store[key]
	if !ok || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.skips, true
}

func (c *locationCache) set(key string, skips []models.Skip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{skips: skips, fetchedAt: time.Now()}
}

// evictExpired removes entries past their TTL and reports how many were dropped.
func (c *locationCache) evictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var evicted int
	for key, entry := range c.store {
		if time.Since(entry.fetchedAt) > c.ttl {
			delete(c.store, key)
			evicted++
		}
	}
	return evicted
}

func cacheKey(postcode, area string) string {
	return postcode + "|" + area
}
