package shipping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

func defaultProfile(t *testing.T) *shipping.ShippingProfile {
	t.Helper()
	profile, err := shipping.NewShippingProfile("Default", shipping.ProfileTypeDefault)
	require.NoError(t, err)
	return profile
}

func shippingSetWithZones(t *testing.T, zoneNames ...string) shipping.FulfillmentSet {
	t.Helper()
	set, err := shipping.NewFulfillmentSet("Warehouse", shipping.FulfillmentSetTypeShipping)
	require.NoError(t, err)
	for _, name := range zoneNames {
		_, err := set.AddServiceZone(name)
		require.NoError(t, err)
	}
	return *set
}

func newSync(gateway *mockGateway, options *mockOptionRepo, profiles *mockProfileRepo, sets *mockSetRepo) *SyncService {
	return NewSyncService(gateway, options, profiles, sets, "external-shipping", 1000, "usd", nil)
}

func TestSyncCreatesOptionPerCarrierZonePair(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, int64(1000), "usd").Return([]shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1500},
		{ID: "c2", Name: "Express", Amount: 3000},
	}, nil)

	options := new(mockOptionRepo)
	options.On("DeleteByProvider", mock.Anything, "external-shipping").Return(int64(3), nil)
	options.On("Save", mock.Anything, mock.AnythingOfType("*shipping.ShippingOption")).Return(nil)

	profiles := new(mockProfileRepo)
	profiles.On("FindDefault", mock.Anything).Return(defaultProfile(t), nil)

	sets := new(mockSetRepo)
	sets.On("FindByType", mock.Anything, shipping.FulfillmentSetTypeShipping).
		Return([]shipping.FulfillmentSet{shippingSetWithZones(t, "Africa", "Europe")}, nil)

	result, err := newSync(gateway, options, profiles, sets).Sync(context.Background())
	require.NoError(t, err)

	// 2 carriers x 1 profile x 2 zones.
	assert.Equal(t, 4, result.Created)
	assert.Equal(t, int64(3), result.Deleted)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 2, result.Carriers)
	assert.Equal(t, 2, result.Zones)
	assert.Equal(t, 1, result.Profiles)
	options.AssertNumberOfCalls(t, "Save", 4)
}

func TestSyncIsIdempotent(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, int64(1000), "usd").Return([]shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1500},
	}, nil)

	profiles := new(mockProfileRepo)
	profiles.On("FindDefault", mock.Anything).Return(defaultProfile(t), nil)

	sets := new(mockSetRepo)
	sets.On("FindByType", mock.Anything, shipping.FulfillmentSetTypeShipping).
		Return([]shipping.FulfillmentSet{shippingSetWithZones(t, "Africa")}, nil)

	options := new(mockOptionRepo)
	options.On("DeleteByProvider", mock.Anything, "external-shipping").Return(int64(0), nil).Once()
	options.On("DeleteByProvider", mock.Anything, "external-shipping").Return(int64(1), nil).Once()
	options.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := newSync(gateway, options, profiles, sets)

	first, err := svc.Sync(context.Background())
	require.NoError(t, err)
	second, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Created, second.Created)
	assert.Equal(t, int64(1), second.Deleted)
}

func TestSyncAbortsOnEmptyCatalogWithoutDeleting(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return([]shipping.CarrierQuote{}, nil)

	options := new(mockOptionRepo)
	profiles := new(mockProfileRepo)
	sets := new(mockSetRepo)

	_, err := newSync(gateway, options, profiles, sets).Sync(context.Background())

	assert.ErrorIs(t, err, shipping.ErrEmptyCatalog)
	options.AssertNotCalled(t, "DeleteByProvider", mock.Anything, mock.Anything)
}

func TestSyncAbortsOnGatewayFailureWithoutDeleting(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, shipping.ErrRateAPIUnavailable)

	options := new(mockOptionRepo)

	_, err := newSync(gateway, options, new(mockProfileRepo), new(mockSetRepo)).Sync(context.Background())

	assert.ErrorIs(t, err, shipping.ErrEmptyCatalog)
	options.AssertNotCalled(t, "DeleteByProvider", mock.Anything, mock.Anything)
}

func TestSyncFailsWithoutProfile(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return([]shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1500},
	}, nil)

	profiles := new(mockProfileRepo)
	profiles.On("FindDefault", mock.Anything).Return(nil, shared.ErrNotFound)

	options := new(mockOptionRepo)

	_, err := newSync(gateway, options, profiles, new(mockSetRepo)).Sync(context.Background())

	assert.ErrorIs(t, err, shipping.ErrNoShippingProfile)
	options.AssertNotCalled(t, "DeleteByProvider", mock.Anything, mock.Anything)
}

func TestSyncFailsWithoutServiceZones(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return([]shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1500},
	}, nil)

	profiles := new(mockProfileRepo)
	profiles.On("FindDefault", mock.Anything).Return(defaultProfile(t), nil)

	sets := new(mockSetRepo)
	sets.On("FindByType", mock.Anything, shipping.FulfillmentSetTypeShipping).
		Return([]shipping.FulfillmentSet{}, nil)

	options := new(mockOptionRepo)

	_, err := newSync(gateway, options, profiles, sets).Sync(context.Background())

	assert.ErrorIs(t, err, shipping.ErrNoServiceZones)
	options.AssertNotCalled(t, "DeleteByProvider", mock.Anything, mock.Anything)
}

func TestSyncPerItemFailureIsIsolated(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return([]shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1500},
		{ID: "c2", Name: "Express", Amount: 3000},
	}, nil)

	profiles := new(mockProfileRepo)
	profiles.On("FindDefault", mock.Anything).Return(defaultProfile(t), nil)

	sets := new(mockSetRepo)
	sets.On("FindByType", mock.Anything, shipping.FulfillmentSetTypeShipping).
		Return([]shipping.FulfillmentSet{shippingSetWithZones(t, "Africa")}, nil)

	options := new(mockOptionRepo)
	options.On("DeleteByProvider", mock.Anything, mock.Anything).Return(int64(0), nil)
	options.On("Save", mock.Anything, mock.MatchedBy(func(o *shipping.ShippingOption) bool {
		return o.CarrierID == "c1"
	})).Return(shared.NewDomainError("DB_DOWN", "write failed"))
	options.On("Save", mock.Anything, mock.MatchedBy(func(o *shipping.ShippingOption) bool {
		return o.CarrierID == "c2"
	})).Return(nil)

	result, err := newSync(gateway, options, profiles, sets).Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
}

func TestFetchCatalogFiltersUnpriced(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Quote", mock.Anything, int64(1000), "usd").Return([]shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1500},
		{ID: "c2", Name: "Unavailable", Amount: 0},
	}, nil)

	catalog, err := newSync(gateway, new(mockOptionRepo), new(mockProfileRepo), new(mockSetRepo)).
		FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "c1", catalog[0].ID)
}
