package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/shipping"
)

// InMemoryQuoteCache implements QuoteCache with a process-local map.
// Suitable for single-instance deployments and testing.
// WARNING: state is not shared across process instances.
type InMemoryQuoteCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	quotes    []shipping.CarrierQuote
	expiresAt time.Time
}

// NewInMemoryQuoteCache creates an empty in-memory quote cache.
func NewInMemoryQuoteCache() *InMemoryQuoteCache {
	return &InMemoryQuoteCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached quotes if present and not expired.
func (c *InMemoryQuoteCache) Get(_ context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, bool, error) {
	key := quoteKey(weightGrams, currencyCode)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	quotes := make([]shipping.CarrierQuote, len(entry.quotes))
	copy(quotes, entry.quotes)
	return quotes, true, nil
}

// Set stores quotes with a TTL.
func (c *InMemoryQuoteCache) Set(_ context.Context, weightGrams int64, currencyCode string, quotes []shipping.CarrierQuote, ttl time.Duration) error {
	stored := make([]shipping.CarrierQuote, len(quotes))
	copy(stored, quotes)

	c.mu.Lock()
	c.entries[quoteKey(weightGrams, currencyCode)] = inMemoryEntry{
		quotes:    stored,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Close clears the cache.
func (c *InMemoryQuoteCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]inMemoryEntry)
	c.mu.Unlock()
	return nil
}

var _ QuoteCache = (*InMemoryQuoteCache)(nil)
