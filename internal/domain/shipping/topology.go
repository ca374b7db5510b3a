package shipping

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProfileType distinguishes the store-wide default profile from
// special-purpose profiles (e.g. oversized goods).
type ProfileType string

const (
	ProfileTypeDefault ProfileType = "default"
	ProfileTypeCustom  ProfileType = "custom"
)

// ShippingProfile groups products sharing fulfillment characteristics.
// Synced options are attached to exactly one profile.
type ShippingProfile struct {
	shared.BaseAggregateRoot
	Name string      `gorm:"type:varchar(200);not null"`
	Type ProfileType `gorm:"type:varchar(20);not null;default:'custom'"`
}

// TableName returns the table name for GORM
func (ShippingProfile) TableName() string {
	return "shipping_profiles"
}

// NewShippingProfile creates a shipping profile.
func NewShippingProfile(name string, profileType ProfileType) (*ShippingProfile, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Profile name cannot be empty")
	}
	if profileType != ProfileTypeDefault && profileType != ProfileTypeCustom {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid profile type")
	}
	return &ShippingProfile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              profileType,
	}, nil
}

// IsDefault returns true for the store-wide default profile.
func (p *ShippingProfile) IsDefault() bool {
	return p.Type == ProfileTypeDefault
}

// FulfillmentSetType distinguishes shipped delivery from in-person pickup.
type FulfillmentSetType string

const (
	FulfillmentSetTypeShipping FulfillmentSetType = "shipping"
	FulfillmentSetTypePickup   FulfillmentSetType = "pickup"
)

// FulfillmentSet groups the service zones reachable from one stock location.
// Only sets of type "shipping" participate in option synchronization.
type FulfillmentSet struct {
	shared.BaseAggregateRoot
	Name         string             `gorm:"type:varchar(200);not null"`
	Type         FulfillmentSetType `gorm:"type:varchar(20);not null;default:'shipping'"`
	ServiceZones []ServiceZone      `gorm:"foreignKey:FulfillmentSetID"`
}

// TableName returns the table name for GORM
func (FulfillmentSet) TableName() string {
	return "fulfillment_sets"
}

// NewFulfillmentSet creates a fulfillment set.
func NewFulfillmentSet(name string, setType FulfillmentSetType) (*FulfillmentSet, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fulfillment set name cannot be empty")
	}
	if setType != FulfillmentSetTypeShipping && setType != FulfillmentSetTypePickup {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid fulfillment set type")
	}
	return &FulfillmentSet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              setType,
	}, nil
}

// AddServiceZone attaches a new service zone to the set.
func (f *FulfillmentSet) AddServiceZone(name string) (*ServiceZone, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service zone name cannot be empty")
	}
	zone := ServiceZone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		FulfillmentSetID:  f.ID,
	}
	f.ServiceZones = append(f.ServiceZones, zone)
	return &f.ServiceZones[len(f.ServiceZones)-1], nil
}

// ServiceZone is a geographic grouping deciding which shipping options apply
// to a destination.
type ServiceZone struct {
	shared.BaseAggregateRoot
	Name             string    `gorm:"type:varchar(200);not null"`
	FulfillmentSetID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ServiceZone) TableName() string {
	return "service_zones"
}
