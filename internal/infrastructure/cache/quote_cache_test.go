package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

func TestQuoteCache(t *testing.T) {
	cache := NewQuoteCache(time.Hour)

	// Test initial state
	assert.Equal(t, 0, cache.Size())

	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	quotes := []entity.RateQuote{
		{Currency: "USD", Date: date, Sale: 37.45, Buy: 37.2},
		{Currency: "EUR", Date: date, Sale: 40.7, Buy: 40.1},
	}

	cache.Put(date, quotes)
	assert.Equal(t, 1, cache.Size())

	// Test retrieval
	retrieved := cache.Get(date)
	assert.Equal(t, quotes, retrieved)

	// Test non-existent retrieval
	assert.Nil(t, cache.Get(date.AddDate(0, 0, -1)))

	// Test expiration
	shortCache := NewQuoteCache(10 * time.Millisecond)
	shortCache.Put(date, quotes)
	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, shortCache.Get(date))

	// Test cleaning expired entries
	count := shortCache.CleanExpired()
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, shortCache.Size())
}
