package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/storefront/backend/internal/domain/cart"
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

type mockOptionRepo struct {
	mock.Mock
}

func (m *mockOptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingOption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingOption), args.Error(1)
}

func (m *mockOptionRepo) FindByProvider(ctx context.Context, providerID string) ([]shipping.ShippingOption, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.ShippingOption), args.Error(1)
}

func (m *mockOptionRepo) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOptionRepo) Save(ctx context.Context, option *shipping.ShippingOption) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *mockOptionRepo) DeleteByProvider(ctx context.Context, providerID string) (int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindDefault(ctx context.Context) (*shipping.ShippingProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingProfile), args.Error(1)
}

func (m *mockProfileRepo) FindAll(ctx context.Context) ([]shipping.ShippingProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.ShippingProfile), args.Error(1)
}

func (m *mockProfileRepo) Save(ctx context.Context, profile *shipping.ShippingProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type mockSetRepo struct {
	mock.Mock
}

func (m *mockSetRepo) FindByType(ctx context.Context, setType shipping.FulfillmentSetType) ([]shipping.FulfillmentSet, error) {
	args := m.Called(ctx, setType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.FulfillmentSet), args.Error(1)
}

func (m *mockSetRepo) Save(ctx context.Context, set *shipping.FulfillmentSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
