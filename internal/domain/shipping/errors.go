package shipping

import "github.com/storefront/backend/internal/domain/shared"

// Synchronization errors. These indicate operator setup problems or a dead
// upstream, not routine unavailability, and abort the affected run.
var (
	// ErrEmptyCatalog means the live carrier catalog could not be fetched
	// or came back empty; existing options are left untouched.
	ErrEmptyCatalog = shared.NewDomainError("EMPTY_CATALOG", "Live carrier catalog is empty or unavailable")

	// ErrNoShippingProfile means no shipping profile exists to attach
	// options to.
	ErrNoShippingProfile = shared.NewDomainError("NO_SHIPPING_PROFILE", "No shipping profile found")

	// ErrNoServiceZones means no service zone belongs to any shipping
	// fulfillment set.
	ErrNoServiceZones = shared.NewDomainError("NO_SERVICE_ZONES", "No service zones found for shipping fulfillment sets")
)
