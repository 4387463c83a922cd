package cache

import (
	"sync"
	"time"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

// cacheEntry holds one day's quotes with its insertion time
type cacheEntry struct {
	quotes    []entity.RateQuote
	timestamp time.Time
}

// QuoteCache provides a thread-safe in-memory cache of per-date quote lists.
// Historical quotes never change, but entries still expire so today's quotes
// refresh as the source publishes updates during the day.
type QuoteCache struct {
	cache      map[string]cacheEntry
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewQuoteCache creates a quote cache with the given entry lifetime
func NewQuoteCache(expiration time.Duration) *QuoteCache {
	if expiration <= 0 {
		expiration = time.Hour
	}

	return &QuoteCache{
		cache:      make(map[string]cacheEntry),
		expiration: expiration,
	}
}

func cacheKey(date time.Time) string {
	return date.Format(entity.QuoteDateFormat)
}

// Get retrieves the quotes cached for a date, or nil when absent or expired
func (c *QuoteCache) Get(date time.Time) []entity.RateQuote {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[cacheKey(date)]
	if !exists || time.Since(entry.timestamp) > c.expiration {
		return nil
	}

	return entry.quotes
}

// Put stores the quotes fetched for a date
func (c *QuoteCache) Put(date time.Time, quotes []entity.RateQuote) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[cacheKey(date)] = cacheEntry{
		quotes:    quotes,
		timestamp: time.Now(),
	}
}

// Size returns the number of cached dates
func (c *QuoteCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CleanExpired removes expired entries and reports how many were dropped
func (c *QuoteCache) CleanExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := 0
	now := time.Now()

	for key, entry := range c.cache {
		if now.Sub(entry.timestamp) > c.expiration {
			delete(c.cache, key)
			count++
		}
	}

	return count
}
