package shipping

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// SyncService replaces the local shipping-option catalog for one provider
// with fresh carrier data. The run is two-phase: the live catalog and the
// local topology are verified first, and only then are the old options
// deleted and rebuilt. A dead or empty upstream therefore never wipes a
// working catalog.
type SyncService struct {
	gateway           shipping.RateGateway
	options           shipping.ShippingOptionRepository
	profiles          shipping.ShippingProfileRepository
	fulfillmentSets   shipping.FulfillmentSetRepository
	providerID        string
	sampleWeightGrams int64
	currencyCode      string
	logger            *zap.Logger
}

// NewSyncService creates the option synchronizer.
func NewSyncService(
	gateway shipping.RateGateway,
	options shipping.ShippingOptionRepository,
	profiles shipping.ShippingProfileRepository,
	fulfillmentSets shipping.FulfillmentSetRepository,
	providerID string,
	sampleWeightGrams int64,
	currencyCode string,
	logger *zap.Logger,
) *SyncService {
	if providerID == "" {
		providerID = DefaultProviderID
	}
	if sampleWeightGrams <= 0 {
		sampleWeightGrams = shipping.SampleWeightGrams
	}
	if currencyCode == "" {
		currencyCode = "usd"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		gateway:           gateway,
		options:           options,
		profiles:          profiles,
		fulfillmentSets:   fulfillmentSets,
		providerID:        providerID,
		sampleWeightGrams: sampleWeightGrams,
		currencyCode:      currencyCode,
		logger:            logger,
	}
}

// FetchCatalog returns the live priced carrier catalog at the sample weight
// without touching local state. It backs the dry-run admin endpoint and the
// first phase of Sync.
func (s *SyncService) FetchCatalog(ctx context.Context) ([]shipping.CarrierQuote, error) {
	quotes, err := s.gateway.Quote(ctx, s.sampleWeightGrams, s.currencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrEmptyCatalog, err)
	}
	priced := shipping.FilterPriced(quotes)
	if len(priced) == 0 {
		return nil, shipping.ErrEmptyCatalog
	}
	return priced, nil
}

// Sync runs a full synchronization and returns its summary.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	catalog, err := s.FetchCatalog(ctx)
	if err != nil {
		s.logger.Warn("sync aborted: live catalog unavailable", zap.Error(err))
		return nil, err
	}

	profile, err := s.profiles.FindDefault(ctx)
	if err != nil {
		s.logger.Warn("sync aborted: no shipping profile", zap.Error(err))
		return nil, shipping.ErrNoShippingProfile
	}

	zones, err := s.shippingZones(ctx)
	if err != nil {
		return nil, err
	}

	deleted, err := s.options.DeleteByProvider(ctx, s.providerID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		Deleted:  deleted,
		Carriers: len(catalog),
		Zones:    len(zones),
		Profiles: 1,
	}

	for _, carrier := range catalog {
		data := shipping.OptionData{
			ID:   carrier.ID,
			Name: carrier.Name,
			Rate: carrier.Amount,
		}
		for _, zone := range zones {
			option, err := shipping.NewShippingOption(s.providerID, zone.ID, profile.ID, data)
			if err == nil {
				err = s.options.Save(ctx, option)
			}
			if err != nil {
				// One bad carrier/zone pair must not sink the run.
				result.Failed++
				s.logger.Warn("failed to create shipping option",
					zap.String("carrier_id", carrier.ID),
					zap.String("zone_id", zone.ID.String()),
					zap.Error(err))
				continue
			}
			result.Created++
		}
	}

	s.logger.Info("shipping option sync complete",
		zap.Int64("deleted", result.Deleted),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed),
		zap.Int("carriers", result.Carriers),
		zap.Int("zones", result.Zones))

	return result, nil
}

// shippingZones collects every service zone belonging to a shipping-type
// fulfillment set.
func (s *SyncService) shippingZones(ctx context.Context) ([]shipping.ServiceZone, error) {
	sets, err := s.fulfillmentSets.FindByType(ctx, shipping.FulfillmentSetTypeShipping)
	if err != nil {
		return nil, err
	}

	var zones []shipping.ServiceZone
	for _, set := range sets {
		zones = append(zones, set.ServiceZones...)
	}
	if len(zones) == 0 {
		s.logger.Warn("sync aborted: no service zones")
		return nil, shipping.ErrNoServiceZones
	}
	return zones, nil
}
