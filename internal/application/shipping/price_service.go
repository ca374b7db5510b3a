package shipping

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// namePrefixDelimiter splits a carrier quote name into its matchable prefix,
// e.g. "Macrotop - 7-Day" matches options named after "Macrotop".
const namePrefixDelimiter = " - "

// PriceService resolves the authoritative price for a stored shipping option
// against fresh carrier quotes. Resolution never fails: when no live quote
// matches (or the rate API is down) it degrades to a deterministic static
// fallback so checkout is never blocked.
type PriceService struct {
	gateway         shipping.RateGateway
	defaultCurrency string
	payOnCollection bool
	logger          *zap.Logger
}

// NewPriceService creates a price resolution service. When payOnCollection
// is set, the charged amount is always zero and the resolved price is kept
// as the informational display rate only.
func NewPriceService(gateway shipping.RateGateway, defaultCurrency string, payOnCollection bool, logger *zap.Logger) *PriceService {
	if defaultCurrency == "" {
		defaultCurrency = "usd"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{
		gateway:         gateway,
		defaultCurrency: defaultCurrency,
		payOnCollection: payOnCollection,
		logger:          logger,
	}
}

// Resolve computes the price for one option on one cart.
func (s *PriceService) Resolve(ctx context.Context, data shipping.OptionData, cartCtx shipping.CartContext) shipping.CalculatedPrice {
	weightGrams := shipping.ChargeableWeightGrams(cartCtx.TotalWeightGrams())
	weightKg := shipping.WeightKilograms(weightGrams)

	currency := cartCtx.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	amount, source := s.resolveAmount(ctx, data, weightGrams, currency)
	if source == shipping.PriceSourceFallback {
		amount = shipping.StaticFallbackPrice(weightKg)
	}

	charged := amount
	if s.payOnCollection {
		charged = 0
	}

	return shipping.CalculatedPrice{
		ChargedAmount: charged,
		DisplayRate:   amount,
		TaxInclusive:  false,
		Source:        source,
	}
}

// resolveAmount tries the live quote set: exact carrier id first, then the
// name-prefix match. A zero source amount is treated as unmatched.
func (s *PriceService) resolveAmount(ctx context.Context, data shipping.OptionData, weightGrams int64, currency string) (int64, shipping.PriceSource) {
	quotes, err := s.gateway.Quote(ctx, weightGrams, currency)
	if err != nil {
		s.logger.Warn("live quoting failed, using static fallback",
			zap.String("carrier_id", data.ID),
			zap.Error(err))
		return 0, shipping.PriceSourceFallback
	}

	for _, q := range quotes {
		if q.IsPriced() && q.ID == data.ID {
			return q.Amount, shipping.PriceSourceLive
		}
	}

	optionName := strings.ToLower(data.Name)
	for _, q := range quotes {
		if !q.IsPriced() {
			continue
		}
		prefix := strings.ToLower(strings.SplitN(q.Name, namePrefixDelimiter, 2)[0])
		if prefix != "" && strings.Contains(optionName, prefix) {
			return q.Amount, shipping.PriceSourceLive
		}
	}

	s.logger.Debug("no live quote matched option",
		zap.String("carrier_id", data.ID),
		zap.String("option_name", data.Name),
		zap.Int("quotes", len(quotes)))
	return 0, shipping.PriceSourceFallback
}
