package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// DefaultQuoteTTL bounds how stale a cached quote may get. Carrier pricing
// changes rarely; a few minutes is enough to absorb checkout traffic bursts.
const DefaultQuoteTTL = 5 * time.Minute

// CachedGateway wraps a RateGateway with a read-through quote cache.
// Package booking and cancellation always hit the upstream directly.
type CachedGateway struct {
	inner  shipping.RateGateway
	cache  QuoteCache
	ttl    time.Duration
	logger *zap.Logger
}

var _ shipping.RateGateway = (*CachedGateway)(nil)

// NewCachedGateway wraps gateway with cache. A zero ttl uses DefaultQuoteTTL.
func NewCachedGateway(inner shipping.RateGateway, cache QuoteCache, ttl time.Duration, logger *zap.Logger) *CachedGateway {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGateway{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Quote serves quotes from the cache when possible. Cache failures are
// logged and treated as misses so a broken Redis never blocks pricing.
func (g *CachedGateway) Quote(ctx context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, error) {
	quotes, hit, err := g.cache.Get(ctx, weightGrams, currencyCode)
	if err != nil {
		g.logger.Warn("quote cache read failed", zap.Error(err))
	}
	if hit {
		return quotes, nil
	}

	quotes, err = g.inner.Quote(ctx, weightGrams, currencyCode)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(ctx, weightGrams, currencyCode, quotes, g.ttl); err != nil {
		g.logger.Warn("quote cache write failed", zap.Error(err))
	}
	return quotes, nil
}

// CreatePackage delegates to the upstream gateway.
func (g *CachedGateway) CreatePackage(ctx context.Context, req shipping.PackageRequest) (*shipping.PackageResult, error) {
	return g.inner.CreatePackage(ctx, req)
}

// CancelPackage delegates to the upstream gateway.
func (g *CachedGateway) CancelPackage(ctx context.Context, externalID string) error {
	return g.inner.CancelPackage(ctx, externalID)
}
