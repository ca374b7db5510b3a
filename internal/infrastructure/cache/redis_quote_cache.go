package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/shipping"
)

// RedisQuoteCache implements QuoteCache using Redis. Suitable for
// multi-instance deployments where every instance should share the
// quote cache.
type RedisQuoteCache struct {
	client *redis.Client
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisQuoteCache creates a Redis-backed quote cache and verifies the
// connection before returning.
func NewRedisQuoteCache(cfg RedisConfig) (*RedisQuoteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQuoteCache{client: client}, nil
}

// NewRedisQuoteCacheWithClient creates a cache around an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisQuoteCacheWithClient(client *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{client: client}
}

// Get returns the cached quotes for a weight/currency pair.
func (c *RedisQuoteCache) Get(ctx context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, bool, error) {
	raw, err := c.client.Get(ctx, quoteKey(weightGrams, currencyCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached quotes: %w", err)
	}

	var quotes []shipping.CarrierQuote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		// A corrupt entry is a miss, not a failure.
		return nil, false, nil
	}
	return quotes, true, nil
}

// Set stores quotes with a TTL.
func (c *RedisQuoteCache) Set(ctx context.Context, weightGrams int64, currencyCode string, quotes []shipping.CarrierQuote, ttl time.Duration) error {
	raw, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}
	if err := c.client.Set(ctx, quoteKey(weightGrams, currencyCode), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quotes: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity
func (c *RedisQuoteCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisQuoteCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisQuoteCache) GetClient() *redis.Client {
	return c.client
}

var _ QuoteCache = (*RedisQuoteCache)(nil)
