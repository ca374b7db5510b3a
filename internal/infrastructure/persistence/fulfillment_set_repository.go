package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shipping"
)

// GormFulfillmentSetRepository implements FulfillmentSetRepository using GORM
type GormFulfillmentSetRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentSetRepository creates a new GormFulfillmentSetRepository
func NewGormFulfillmentSetRepository(db *gorm.DB) *GormFulfillmentSetRepository {
	return &GormFulfillmentSetRepository{db: db}
}

var _ shipping.FulfillmentSetRepository = (*GormFulfillmentSetRepository)(nil)

// FindByType lists fulfillment sets of the given type with zones preloaded
func (r *GormFulfillmentSetRepository) FindByType(ctx context.Context, setType shipping.FulfillmentSetType) ([]shipping.FulfillmentSet, error) {
	var sets []shipping.FulfillmentSet
	if err := r.db.WithContext(ctx).
		Preload("ServiceZones").
		Where("type = ?", setType).
		Order("created_at ASC").
		Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// Save creates or updates a fulfillment set together with its zones
func (r *GormFulfillmentSetRepository) Save(ctx context.Context, set *shipping.FulfillmentSet) error {
	return r.db.WithContext(ctx).Save(set).Error
}
