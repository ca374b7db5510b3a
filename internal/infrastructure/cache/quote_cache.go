package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/shipping"
)

// QuoteCache stores carrier quotes keyed by shipment weight and currency.
// Quotes for the same weight are valid for any cart, so a short TTL keeps
// repeated checkout visits from hammering the rate API.
type QuoteCache interface {
	// Get returns the cached quotes and whether the key was present.
	Get(ctx context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, bool, error)
	// Set stores quotes under the weight/currency key with a TTL.
	Set(ctx context.Context, weightGrams int64, currencyCode string, quotes []shipping.CarrierQuote, ttl time.Duration) error
	// Close releases any underlying resources.
	Close() error
}

// quoteKey builds the cache key for a weight/currency pair.
func quoteKey(weightGrams int64, currencyCode string) string {
	return fmt.Sprintf("rates:quote:%d:%s", weightGrams, currencyCode)
}
