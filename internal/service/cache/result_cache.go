package cache

import (
	"sync"
	"time"

	"TrendGate/internal/domain/models"
)

type entry struct {
	refreshed time.Time
	result    bool
}

// ResultCache memoizes per-symbol filter results for refreshPeriod.
// Expiry is checked lazily on Get; there is no background sweeper.
type ResultCache struct {
	mu      sync.RWMutex
	m       map[string]entry
	refresh time.Duration
}

func NewResultCache(refreshPeriod time.Duration) *ResultCache {
	return &ResultCache{m: make(map[string]entry), refresh: refreshPeriod}
}

// Get returns the cached result while now - last refresh < refresh period.
// An expired entry is removed and reported as a miss.
func (c *ResultCache) Get(symbol string, now time.Time) (bool, bool) {
	c.mu.RLock()
	e, ok := c.m[symbol]
	c.mu.RUnlock()
	if !ok {
		return false, false
	}
	if now.Sub(e.refreshed) < c.refresh {
		return e.result, true
	}
	c.mu.Lock()
	// another caller may have refreshed the entry meanwhile
	if cur, ok := c.m[symbol]; ok && cur.refreshed.Equal(e.refreshed) {
		delete(c.m, symbol)
	}
	c.mu.Unlock()
	return false, false
}

// Put overwrites the entry for symbol.
func (c *ResultCache) Put(symbol string, result bool, now time.Time) {
	c.mu.Lock()
	c.m[symbol] = entry{refreshed: now, result: result}
	c.mu.Unlock()
}

// Peek returns the stored entry without checking expiry.
func (c *ResultCache) Peek(symbol string) (models.CacheEntry, bool) {
	c.mu.RLock()
	e, ok := c.m[symbol]
	c.mu.RUnlock()
	if !ok {
		return models.CacheEntry{}, false
	}
	return models.CacheEntry{Symbol: symbol, LastRefresh: e.refreshed, Result: e.result}, true
}

// Len reports the number of stored entries, expired ones included.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
