package shipping

import (
	"context"
	"errors"
)

// Errors for the external rate gateway. Callers on the pricing path treat
// every gateway failure identically as "no live data" and fall through to
// static pricing; the sync path treats them as abort conditions.
var (
	// ErrRateAPIUnavailable wraps transport-level failures.
	ErrRateAPIUnavailable = errors.New("shipping: rate API unavailable")
	// ErrRateAPIRequestFailed wraps non-2xx responses.
	ErrRateAPIRequestFailed = errors.New("shipping: rate API request failed")
	// ErrRateAPIInvalidResponse wraps malformed response bodies.
	ErrRateAPIInvalidResponse = errors.New("shipping: rate API returned an invalid response")
)

// PackageRequest is the payload for booking a shipment with the carrier.
type PackageRequest struct {
	ShippingOptionID string            `json:"shipping_option_id"`
	WeightGrams      int64             `json:"weight"`
	Sender           Address           `json:"sender_details"`
	Receiver         Address           `json:"receiver_details"`
	Items            []FulfillmentItem `json:"items"`
	Reference        string            `json:"reference,omitempty"`
}

// PackageResult is the carrier's booking confirmation.
type PackageResult struct {
	ExternalID     string
	TrackingNumber string
	LabelURL       string
}

// RateGateway is the low-level client for the external rate API. One
// implementation talks HTTP (internal/infrastructure/rateapi); a caching
// decorator wraps Quote for the storefront read path.
type RateGateway interface {
	// Quote returns fresh carrier quotes for a shipment weight and
	// currency, or a typed error when no live data could be obtained.
	Quote(ctx context.Context, weightGrams int64, currencyCode string) ([]CarrierQuote, error)

	// CreatePackage books a shipment and returns the carrier's
	// confirmation.
	CreatePackage(ctx context.Context, req PackageRequest) (*PackageResult, error)

	// CancelPackage cancels a previously booked shipment.
	CancelPackage(ctx context.Context, externalID string) error
}
