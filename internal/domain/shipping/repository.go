package shipping

import (
	"context"

	"github.com/google/uuid"
)

// ShippingOptionRepository defines persistence for shipping options.
type ShippingOptionRepository interface {
	// FindByID finds an option by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingOption, error)

	// FindByProvider finds all options owned by a fulfillment provider
	FindByProvider(ctx context.Context, providerID string) ([]ShippingOption, error)

	// CountByProvider counts options owned by a fulfillment provider
	CountByProvider(ctx context.Context, providerID string) (int64, error)

	// Save creates or updates an option
	Save(ctx context.Context, option *ShippingOption) error

	// DeleteByProvider deletes every option owned by a provider and
	// returns the number of rows removed
	DeleteByProvider(ctx context.Context, providerID string) (int64, error)
}

// ShippingProfileRepository defines persistence for shipping profiles.
type ShippingProfileRepository interface {
	// FindDefault finds the store-wide default profile, falling back to
	// any profile when none is marked default
	FindDefault(ctx context.Context) (*ShippingProfile, error)

	// FindAll lists every profile
	FindAll(ctx context.Context) ([]ShippingProfile, error)

	// Save creates or updates a profile
	Save(ctx context.Context, profile *ShippingProfile) error
}

// FulfillmentSetRepository defines persistence for fulfillment sets and
// their service zones.
type FulfillmentSetRepository interface {
	// FindByType lists fulfillment sets of the given type with service
	// zones preloaded
	FindByType(ctx context.Context, setType FulfillmentSetType) ([]FulfillmentSet, error)

	// Save creates or updates a fulfillment set together with its zones
	Save(ctx context.Context, set *FulfillmentSet) error
}
