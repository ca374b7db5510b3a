package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

// GormShippingProfileRepository implements ShippingProfileRepository using GORM
type GormShippingProfileRepository struct {
	db *gorm.DB
}

// NewGormShippingProfileRepository creates a new GormShippingProfileRepository
func NewGormShippingProfileRepository(db *gorm.DB) *GormShippingProfileRepository {
	return &GormShippingProfileRepository{db: db}
}

var _ shipping.ShippingProfileRepository = (*GormShippingProfileRepository)(nil)

// FindDefault finds the store-wide default profile. Stores migrated from
// older schemas may have no profile marked default, so any profile is an
// acceptable substitute.
func (r *GormShippingProfileRepository) FindDefault(ctx context.Context) (*shipping.ShippingProfile, error) {
	var profile shipping.ShippingProfile
	err := r.db.WithContext(ctx).
		Where("type = ?", shipping.ProfileTypeDefault).
		Order("created_at ASC").
		First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAll lists every profile
func (r *GormShippingProfileRepository) FindAll(ctx context.Context) ([]shipping.ShippingProfile, error) {
	var profiles []shipping.ShippingProfile
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save creates or updates a profile
func (r *GormShippingProfileRepository) Save(ctx context.Context, profile *shipping.ShippingProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
