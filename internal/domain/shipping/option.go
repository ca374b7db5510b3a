package shipping

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// PriceType determines how a shipping option is priced at checkout.
type PriceType string

const (
	// PriceTypeCalculated means the price is resolved dynamically by the
	// fulfillment provider at calculation time.
	PriceTypeCalculated PriceType = "calculated"
	// PriceTypeFlat means the option carries a fixed price.
	PriceTypeFlat PriceType = "flat"
)

// OptionData is the carrier identification payload embedded in a synced
// shipping option. The price resolution engine uses ID (and Name as a
// fallback) to re-identify the carrier against fresh quotes; Rate is the
// informational display rate captured at sync time. CountryCode, when set,
// pins the destination country and takes precedence over the cart's
// shipping address.
type OptionData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rate        int64  `json:"rate"`
	CountryCode string `json:"country_code,omitempty"`
}

// Value implements driver.Valuer so OptionData persists as JSONB.
func (d OptionData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *OptionData) Scan(value any) error {
	if value == nil {
		*d = OptionData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("shipping: cannot scan %T into OptionData", value)
	}
}

// ShippingOption is a locally stored shipping choice backed by an external
// carrier. Options for the external provider are created wholesale by the
// option synchronizer and read by the platform when listing fulfillment
// choices for a cart; the fulfillment adapter consumes their Data at price
// calculation time.
type ShippingOption struct {
	shared.BaseAggregateRoot
	Name              string     `gorm:"type:varchar(200);not null"`
	ProviderID        string     `gorm:"type:varchar(100);not null;index"`
	CarrierID         string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_option_carrier_zone_profile,priority:2"`
	ServiceZoneID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_option_carrier_zone_profile,priority:3"`
	ShippingProfileID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_option_carrier_zone_profile,priority:4"`
	PriceType         PriceType  `gorm:"type:varchar(20);not null;default:'calculated'"`
	Data              OptionData `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ShippingOption) TableName() string {
	return "shipping_options"
}

// NewShippingOption creates a calculated-price shipping option for an
// external carrier within one service zone / shipping profile combination.
func NewShippingOption(providerID string, serviceZoneID, shippingProfileID uuid.UUID, data OptionData) (*ShippingOption, error) {
	if providerID == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Provider ID cannot be empty")
	}
	if data.ID == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier ID cannot be empty")
	}
	if data.Name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Carrier name cannot be empty")
	}
	if data.Rate < 0 {
		return nil, shared.NewDomainError("INVALID_RATE", "Display rate cannot be negative")
	}
	if serviceZoneID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE_ZONE", "Service zone ID cannot be empty")
	}
	if shippingProfileID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPPING_PROFILE", "Shipping profile ID cannot be empty")
	}

	return &ShippingOption{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              data.Name,
		ProviderID:        providerID,
		CarrierID:         data.ID,
		ServiceZoneID:     serviceZoneID,
		ShippingProfileID: shippingProfileID,
		PriceType:         PriceTypeCalculated,
		Data:              data,
	}, nil
}

// IsCalculated returns true if the option uses dynamic pricing.
func (o *ShippingOption) IsCalculated() bool {
	return o.PriceType == PriceTypeCalculated
}
