package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// QuoteCacheFactory creates quote caches based on configuration
type QuoteCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// QuoteCacheFactoryOption is a functional option for configuring the factory
type QuoteCacheFactoryOption func(*QuoteCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) QuoteCacheFactoryOption {
	return func(f *QuoteCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) QuoteCacheFactoryOption {
	return func(f *QuoteCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewQuoteCacheFactory creates a new factory
func NewQuoteCacheFactory(cfg config.RedisConfig, opts ...QuoteCacheFactoryOption) *QuoteCacheFactory {
	f := &QuoteCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed quote cache
func (f *QuoteCacheFactory) CreateRedisCache() (QuoteCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	c, err := NewRedisQuoteCache(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis quote cache: %w", err)
	}

	return c, nil
}

// CreateInMemoryCache creates an in-memory quote cache
func (f *QuoteCacheFactory) CreateInMemoryCache() QuoteCache {
	return NewInMemoryQuoteCache()
}

// CreateCache tries Redis first and falls back to in-memory when Redis is
// unavailable and fallback is allowed.
func (f *QuoteCacheFactory) CreateCache() (QuoteCache, error) {
	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis quote cache")
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for quote cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory quote cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
