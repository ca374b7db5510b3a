package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shipping"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Quote(ctx context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, error) {
	args := m.Called(ctx, weightGrams, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.CarrierQuote), args.Error(1)
}

func (m *mockGateway) CreatePackage(ctx context.Context, req shipping.PackageRequest) (*shipping.PackageResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.PackageResult), args.Error(1)
}

func (m *mockGateway) CancelPackage(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

func TestCachedGatewayQuoteCachesResult(t *testing.T) {
	inner := new(mockGateway)
	quotes := []shipping.CarrierQuote{{ID: "c1", Amount: 1020}}
	inner.On("Quote", mock.Anything, int64(1020), "usd").Return(quotes, nil).Once()

	g := NewCachedGateway(inner, NewInMemoryQuoteCache(), time.Minute, nil)
	ctx := context.Background()

	got, err := g.Quote(ctx, 1020, "usd")
	require.NoError(t, err)
	assert.Equal(t, quotes, got)

	// Second call must be served from the cache.
	got, err = g.Quote(ctx, 1020, "usd")
	require.NoError(t, err)
	assert.Equal(t, quotes, got)

	inner.AssertExpectations(t)
}

func TestCachedGatewayQuoteErrorNotCached(t *testing.T) {
	inner := new(mockGateway)
	inner.On("Quote", mock.Anything, int64(500), "usd").
		Return(nil, shipping.ErrRateAPIUnavailable).Twice()

	g := NewCachedGateway(inner, NewInMemoryQuoteCache(), time.Minute, nil)
	ctx := context.Background()

	_, err := g.Quote(ctx, 500, "usd")
	assert.ErrorIs(t, err, shipping.ErrRateAPIUnavailable)

	_, err = g.Quote(ctx, 500, "usd")
	assert.ErrorIs(t, err, shipping.ErrRateAPIUnavailable)

	inner.AssertExpectations(t)
}

func TestCachedGatewayEmptyQuoteListIsCached(t *testing.T) {
	inner := new(mockGateway)
	inner.On("Quote", mock.Anything, int64(500), "usd").
		Return([]shipping.CarrierQuote{}, nil).Once()

	g := NewCachedGateway(inner, NewInMemoryQuoteCache(), time.Minute, nil)
	ctx := context.Background()

	got, err := g.Quote(ctx, 500, "usd")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = g.Quote(ctx, 500, "usd")
	require.NoError(t, err)
	assert.Empty(t, got)

	inner.AssertExpectations(t)
}

func TestCachedGatewayPassThrough(t *testing.T) {
	inner := new(mockGateway)
	req := shipping.PackageRequest{ShippingOptionID: "c1", Reference: "order_1"}
	result := &shipping.PackageResult{ExternalID: "pkg_1"}
	inner.On("CreatePackage", mock.Anything, req).Return(result, nil)
	inner.On("CancelPackage", mock.Anything, "pkg_1").Return(nil)

	g := NewCachedGateway(inner, NewInMemoryQuoteCache(), time.Minute, nil)
	ctx := context.Background()

	got, err := g.CreatePackage(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, result, got)

	require.NoError(t, g.CancelPackage(ctx, "pkg_1"))
	inner.AssertExpectations(t)
}
