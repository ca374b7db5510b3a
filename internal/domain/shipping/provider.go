package shipping

import "context"

// PriceSource labels whether a resolved price came from a live quote or the
// deterministic static fallback. The distinction is surfaced end-to-end so
// consumers can tell synthetic data from carrier data.
type PriceSource string

const (
	PriceSourceLive     PriceSource = "live"
	PriceSourceFallback PriceSource = "fallback"
)

// CartLine is the minimal line-item view the provider needs for pricing and
// fulfillment: a quantity and the per-unit variant weight.
type CartLine struct {
	Title       string
	Quantity    int64
	WeightGrams int64
}

// CartContext is the cart-derived input to validation and price calculation.
type CartContext struct {
	CurrencyCode    string
	ShippingCountry string
	Lines           []CartLine
}

// TotalWeightGrams sums line weights times quantities.
func (c CartContext) TotalWeightGrams() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.WeightGrams * line.Quantity
	}
	return total
}

// ValidatedData is the provider-validated fulfillment record. Validation
// never fails: a destination country is always resolved from, in order,
// explicit input, the cart's shipping address, the shipment origin, or the
// configured default.
type ValidatedData struct {
	CarrierID   string `json:"id"`
	CountryCode string `json:"country_code"`
}

// CalculatedPrice is the result of price resolution. ChargedAmount is what
// the platform charges at checkout; DisplayRate is the informational price
// shown to the shopper. Pay-on-collection deployments zero the former while
// the latter keeps the real carrier fee — the two must never be conflated.
type CalculatedPrice struct {
	ChargedAmount int64
	DisplayRate   int64
	TaxInclusive  bool
	Source        PriceSource
}

// Address carries the sender/receiver details for package creation.
type Address struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	AddressLine string `json:"address"`
	City        string `json:"city,omitempty"`
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code,omitempty"`
}

// FulfillmentItem is one shipped line with its weight breakdown.
type FulfillmentItem struct {
	Title       string `json:"title"`
	Quantity    int64  `json:"quantity"`
	WeightGrams int64  `json:"weight"`
}

// CreateFulfillmentRequest packages everything needed to book a shipment
// with the external carrier.
type CreateFulfillmentRequest struct {
	OptionData OptionData
	OrderID    string
	Sender     Address
	Receiver   Address
	Items      []FulfillmentItem
}

// FulfillmentStatus tracks a booked (or deferred) shipment.
type FulfillmentStatus string

const (
	FulfillmentStatusPending        FulfillmentStatus = "pending"
	FulfillmentStatusRequiresAction FulfillmentStatus = "requires_action"
	FulfillmentStatusCancelled      FulfillmentStatus = "cancelled"
)

// Fulfillment is the provider's record of one shipment. When the carrier
// booking fails the provider returns a placeholder flagged for manual
// intervention instead of blocking the order.
type Fulfillment struct {
	ExternalID                 string            `json:"external_id"`
	TrackingNumber             string            `json:"tracking_number,omitempty"`
	LabelURL                   string            `json:"label_url,omitempty"`
	Status                     FulfillmentStatus `json:"status"`
	RequiresManualIntervention bool              `json:"requires_manual_intervention,omitempty"`
}

// FulfillmentProvider is the pluggable fulfillment capability set the
// commerce platform calls over one shipment's lifecycle
// (Unvalidated -> Validated -> Priced -> Fulfilled | Cancelled).
type FulfillmentProvider interface {
	// Identifier returns the provider id options are registered under.
	Identifier() string

	// ListOptions is a best-effort discovery call; it returns an empty
	// list on any upstream failure.
	ListOptions(ctx context.Context) []CarrierOption

	// ValidateData merges a destination country into the fulfillment
	// record; it always produces a usable result.
	ValidateData(ctx context.Context, optionData OptionData, cartCtx CartContext) ValidatedData

	// ValidateOption reports whether the stored option is usable.
	ValidateOption(ctx context.Context, optionData OptionData) bool

	// CanCalculate reports whether the provider supports calculated
	// pricing for the option.
	CanCalculate(ctx context.Context, optionData OptionData) bool

	// CalculatePrice resolves the authoritative price for an option on a
	// cart. It never fails for upstream unavailability.
	CalculatePrice(ctx context.Context, optionData OptionData, validated ValidatedData, cartCtx CartContext) (*CalculatedPrice, error)

	// CreateFulfillment books the shipment with the carrier, returning a
	// manual-intervention placeholder on upstream failure rather than an
	// error.
	CreateFulfillment(ctx context.Context, req CreateFulfillmentRequest) (*Fulfillment, error)

	// CancelFulfillment propagates cancellation to the carrier.
	CancelFulfillment(ctx context.Context, fulfillment *Fulfillment) error
}
