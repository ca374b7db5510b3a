package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

// GormShippingOptionRepository implements ShippingOptionRepository using GORM
type GormShippingOptionRepository struct {
	db *gorm.DB
}

// NewGormShippingOptionRepository creates a new GormShippingOptionRepository
func NewGormShippingOptionRepository(db *gorm.DB) *GormShippingOptionRepository {
	return &GormShippingOptionRepository{db: db}
}

var _ shipping.ShippingOptionRepository = (*GormShippingOptionRepository)(nil)

// FindByID finds an option by its ID
func (r *GormShippingOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingOption, error) {
	var option shipping.ShippingOption
	if err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &option, nil
}

// FindByProvider finds all options owned by a fulfillment provider
func (r *GormShippingOptionRepository) FindByProvider(ctx context.Context, providerID string) ([]shipping.ShippingOption, error) {
	var options []shipping.ShippingOption
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("name ASC").
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// CountByProvider counts options owned by a fulfillment provider
func (r *GormShippingOptionRepository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shipping.ShippingOption{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an option
func (r *GormShippingOptionRepository) Save(ctx context.Context, option *shipping.ShippingOption) error {
	return r.db.WithContext(ctx).Save(option).Error
}

// DeleteByProvider deletes every option owned by a provider
func (r *GormShippingOptionRepository) DeleteByProvider(ctx context.Context, providerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Delete(&shipping.ShippingOption{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
