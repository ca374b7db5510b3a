package shipping

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// DefaultProviderID is the identifier shipping options are registered under.
const DefaultProviderID = "external-shipping"

// manualIDPrefix marks placeholder fulfillments that were never booked with
// the carrier and therefore must not be cancelled upstream.
const manualIDPrefix = "manual-"

// ProviderConfig tunes the fulfillment adapter.
type ProviderConfig struct {
	ProviderID        string
	SampleWeightGrams int64
	DefaultCurrency   string
	OriginCountry     string
	DefaultCountry    string
}

// ProviderService is the external carrier's fulfillment adapter. It
// implements the capability set the commerce platform calls over a
// shipment's lifecycle, delegating pricing to PriceService and carrier
// communication to the rate gateway.
type ProviderService struct {
	gateway shipping.RateGateway
	prices  *PriceService
	cfg     ProviderConfig
	logger  *zap.Logger
}

var _ shipping.FulfillmentProvider = (*ProviderService)(nil)

// NewProviderService creates the fulfillment adapter.
func NewProviderService(gateway shipping.RateGateway, prices *PriceService, cfg ProviderConfig, logger *zap.Logger) *ProviderService {
	if cfg.ProviderID == "" {
		cfg.ProviderID = DefaultProviderID
	}
	if cfg.SampleWeightGrams <= 0 {
		cfg.SampleWeightGrams = shipping.SampleWeightGrams
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "usd"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderService{
		gateway: gateway,
		prices:  prices,
		cfg:     cfg,
		logger:  logger,
	}
}

// Identifier returns the provider id.
func (s *ProviderService) Identifier() string {
	return s.cfg.ProviderID
}

// ListOptions fetches the live carrier catalog at the sample weight. This is
// a discovery aid only, so every failure collapses to an empty list.
func (s *ProviderService) ListOptions(ctx context.Context) []shipping.CarrierOption {
	quotes, err := s.gateway.Quote(ctx, s.cfg.SampleWeightGrams, s.cfg.DefaultCurrency)
	if err != nil {
		s.logger.Warn("carrier option discovery failed", zap.Error(err))
		return []shipping.CarrierOption{}
	}

	options := make([]shipping.CarrierOption, 0, len(quotes))
	for _, q := range shipping.FilterPriced(quotes) {
		options = append(options, shipping.CarrierOption{ID: q.ID, Name: q.Name})
	}
	return options
}

// ValidateData resolves the destination country for a fulfillment record.
// The precedence is explicit option data, then cart shipping address, then
// shipment origin, then the configured default; validation always produces
// a usable result.
func (s *ProviderService) ValidateData(_ context.Context, data shipping.OptionData, cartCtx shipping.CartContext) shipping.ValidatedData {
	country := data.CountryCode
	if country == "" {
		country = cartCtx.ShippingCountry
	}
	if country == "" {
		country = s.cfg.OriginCountry
	}
	if country == "" {
		country = s.cfg.DefaultCountry
	}
	return shipping.ValidatedData{
		CarrierID:   data.ID,
		CountryCode: strings.ToUpper(country),
	}
}

// ValidateOption reports whether the stored option carries a carrier id.
func (s *ProviderService) ValidateOption(_ context.Context, data shipping.OptionData) bool {
	return data.ID != ""
}

// CanCalculate is always true: every option this provider owns is priced
// dynamically.
func (s *ProviderService) CanCalculate(_ context.Context, _ shipping.OptionData) bool {
	return true
}

// CalculatePrice resolves the option's price for the cart.
func (s *ProviderService) CalculatePrice(ctx context.Context, data shipping.OptionData, _ shipping.ValidatedData, cartCtx shipping.CartContext) (*shipping.CalculatedPrice, error) {
	price := s.prices.Resolve(ctx, data, cartCtx)
	return &price, nil
}

// CreateFulfillment books the shipment with the carrier. Booking failure is
// absorbed: the order proceeds with a placeholder fulfillment flagged for
// manual intervention by operations staff.
func (s *ProviderService) CreateFulfillment(ctx context.Context, req shipping.CreateFulfillmentRequest) (*shipping.Fulfillment, error) {
	var weightGrams int64
	for _, item := range req.Items {
		weightGrams += item.WeightGrams * item.Quantity
	}
	weightGrams = shipping.ChargeableWeightGrams(weightGrams)

	result, err := s.gateway.CreatePackage(ctx, shipping.PackageRequest{
		ShippingOptionID: req.OptionData.ID,
		WeightGrams:      weightGrams,
		Sender:           req.Sender,
		Receiver:         req.Receiver,
		Items:            req.Items,
		Reference:        req.OrderID,
	})
	if err != nil {
		placeholder := manualIDPrefix + uuid.NewString()
		s.logger.Error("carrier booking failed, creating manual fulfillment",
			zap.String("order_id", req.OrderID),
			zap.String("placeholder_id", placeholder),
			zap.Error(err))
		return &shipping.Fulfillment{
			ExternalID:                 placeholder,
			Status:                     shipping.FulfillmentStatusRequiresAction,
			RequiresManualIntervention: true,
		}, nil
	}

	return &shipping.Fulfillment{
		ExternalID:     result.ExternalID,
		TrackingNumber: result.TrackingNumber,
		LabelURL:       result.LabelURL,
		Status:         shipping.FulfillmentStatusPending,
	}, nil
}

// CancelFulfillment propagates cancellation to the carrier. Manual
// placeholders were never booked upstream, so they cancel locally.
func (s *ProviderService) CancelFulfillment(ctx context.Context, fulfillment *shipping.Fulfillment) error {
	if fulfillment == nil || fulfillment.ExternalID == "" {
		return nil
	}
	if fulfillment.RequiresManualIntervention || strings.HasPrefix(fulfillment.ExternalID, manualIDPrefix) {
		fulfillment.Status = shipping.FulfillmentStatusCancelled
		return nil
	}

	if err := s.gateway.CancelPackage(ctx, fulfillment.ExternalID); err != nil {
		return err
	}
	fulfillment.Status = shipping.FulfillmentStatusCancelled
	return nil
}
