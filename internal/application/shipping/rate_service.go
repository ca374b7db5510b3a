package shipping

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

// ErrInvalidCartID surfaces an unparseable cart id to the caller. It is the
// only rate aggregation failure that becomes a client error; everything else
// degrades to fallback rates.
var ErrInvalidCartID = shared.NewDomainError("INVALID_CART_ID", "Cart ID is not a valid identifier")

// fallbackEntry is one member of the static fallback rate family served when
// live quoting fails. Amounts scale with weight: base + ceil(weight/100g)*50.
type fallbackEntry struct {
	id            string
	name          string
	baseAmount    int64
	estimatedDays string
}

var fallbackCatalog = []fallbackEntry{
	{id: "fallback-economy", name: "Economy Shipping", baseAmount: 800, estimatedDays: "7 days"},
	{id: "fallback-standard", name: "Standard Shipping", baseAmount: 1500, estimatedDays: "3-5 days"},
	{id: "fallback-express", name: "Express Shipping", baseAmount: 3000, estimatedDays: "1-2 days"},
}

const (
	fallbackSurchargeStepGrams int64 = 100
	fallbackSurchargePerStep   int64 = 50

	// defaultEstimatedDays labels live quotes that carry no delivery
	// estimate.
	defaultEstimatedDays = "3-5 days"
)

// RateService aggregates shipping rates for the public storefront endpoint.
// It always produces a usable rate set: live carrier quotes when available,
// the static fallback family otherwise.
type RateService struct {
	gateway         shipping.RateGateway
	carts           cart.Repository
	providerID      string
	defaultCurrency string
	logger          *zap.Logger
}

// NewRateService creates the rate aggregation service.
func NewRateService(gateway shipping.RateGateway, carts cart.Repository, providerID, defaultCurrency string, logger *zap.Logger) *RateService {
	if providerID == "" {
		providerID = DefaultProviderID
	}
	if defaultCurrency == "" {
		defaultCurrency = "usd"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateService{
		gateway:         gateway,
		carts:           carts,
		providerID:      providerID,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// GetRates resolves a shipment weight from the query, fetches live quotes
// and normalizes them for display. Provider failures yield the fallback set,
// never an error; only a malformed cart id is returned to the caller.
func (s *RateService) GetRates(ctx context.Context, query RateQuery) (*RateSet, error) {
	weightGrams, currency, err := s.resolveWeight(ctx, query)
	if err != nil {
		return nil, err
	}

	quotes, err := s.gateway.Quote(ctx, weightGrams, currency)
	if err != nil {
		s.logger.Warn("live rate aggregation failed, serving fallback rates",
			zap.Int64("weight_grams", weightGrams),
			zap.Error(err))
		return s.fallbackRates(weightGrams, currency), nil
	}

	priced := shipping.FilterPriced(quotes)
	if len(priced) == 0 {
		s.logger.Warn("live rate aggregation returned no priced quotes, serving fallback rates",
			zap.Int64("weight_grams", weightGrams))
		return s.fallbackRates(weightGrams, currency), nil
	}

	shipping.SortByAmount(priced)
	weightKg := shipping.WeightKilograms(weightGrams)

	options := make([]RateOption, 0, len(priced))
	for _, q := range priced {
		options = append(options, RateOption{
			ID:              q.ID,
			Name:            q.Name,
			AmountPerKg:     shipping.PerKilogramRate(q.Amount, weightKg),
			AmountFormatted: formatPerKg(shipping.PerKilogramRate(q.Amount, weightKg), currency),
			EstimatedDays:   estimatedDaysLabel(q),
			Provider:        s.providerID,
		})
	}

	return &RateSet{Options: options}, nil
}

// resolveWeight applies the weight precedence: manual override, then cart
// item sum with a 500 g floor, then the 1000 g default. It also resolves the
// quoting currency, preferring the cart's over the configured default.
func (s *RateService) resolveWeight(ctx context.Context, query RateQuery) (int64, string, error) {
	currency := strings.ToLower(query.CurrencyCode)
	if currency == "" {
		currency = s.defaultCurrency
	}

	if query.WeightGrams > 0 {
		return query.WeightGrams, currency, nil
	}

	if query.CartID != "" {
		cartID, err := uuid.Parse(query.CartID)
		if err != nil {
			return 0, "", ErrInvalidCartID
		}

		c, err := s.carts.FindByID(ctx, cartID)
		if err != nil {
			// A vanished cart should still see rates.
			s.logger.Warn("cart not found for rate aggregation, using default weight",
				zap.String("cart_id", query.CartID),
				zap.Error(err))
			return shipping.SampleWeightGrams, currency, nil
		}

		if query.CurrencyCode == "" && c.CurrencyCode != "" {
			currency = c.CurrencyCode
		}
		weight := c.TotalWeightGrams()
		if weight <= 0 {
			weight = shipping.AggregationFloorGrams
		}
		return weight, currency, nil
	}

	return shipping.SampleWeightGrams, currency, nil
}

// fallbackRates builds the weight-scaled static rate family.
func (s *RateService) fallbackRates(weightGrams int64, currency string) *RateSet {
	surchargeSteps := (weightGrams + fallbackSurchargeStepGrams - 1) / fallbackSurchargeStepGrams
	surcharge := surchargeSteps * fallbackSurchargePerStep
	weightKg := shipping.WeightKilograms(weightGrams)

	options := make([]RateOption, 0, len(fallbackCatalog))
	for _, entry := range fallbackCatalog {
		amount := entry.baseAmount + surcharge
		perKg := shipping.PerKilogramRate(amount, weightKg)
		options = append(options, RateOption{
			ID:              entry.id,
			Name:            entry.name,
			AmountPerKg:     perKg,
			AmountFormatted: formatPerKg(perKg, currency),
			EstimatedDays:   entry.estimatedDays,
			Provider:        s.providerID,
		})
	}

	return &RateSet{
		Options:    options,
		IsFallback: true,
		Message:    "Live shipping rates are temporarily unavailable; showing estimated rates.",
	}
}

// formatPerKg renders a minor-unit per-kilogram rate for display,
// e.g. "$15.00/kg" for usd or "EUR 15.00/kg" otherwise.
func formatPerKg(amountPerKg int64, currency string) string {
	value := decimal.NewFromInt(amountPerKg).Div(decimal.NewFromInt(100)).StringFixed(2)
	if strings.EqualFold(currency, "usd") {
		return fmt.Sprintf("$%s/kg", value)
	}
	return fmt.Sprintf("%s %s/kg", strings.ToUpper(currency), value)
}

// estimatedDaysLabel renders a quote's delivery estimate.
func estimatedDaysLabel(q shipping.CarrierQuote) string {
	switch {
	case q.EstimatedDaysMin > 0 && q.EstimatedDaysMax > q.EstimatedDaysMin:
		return fmt.Sprintf("%d-%d days", q.EstimatedDaysMin, q.EstimatedDaysMax)
	case q.EstimatedDaysMin > 0:
		return fmt.Sprintf("%d days", q.EstimatedDaysMin)
	case q.EstimatedDaysMax > 0:
		return fmt.Sprintf("%d days", q.EstimatedDaysMax)
	default:
		return defaultEstimatedDays
	}
}
