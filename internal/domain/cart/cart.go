package cart

import (
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Cart is the minimal view of a shopper's cart the rate-integration
// subsystem reads: line-item weights for shipment weight resolution, the
// currency for quoting, and the shipping-address country for validation.
// The full cart lifecycle (items, totals, checkout) is the platform's
// responsibility and out of scope here.
type Cart struct {
	shared.BaseAggregateRoot
	CurrencyCode    string `gorm:"type:varchar(10);not null;default:'usd'"`
	ShippingCountry string `gorm:"type:varchar(10)"`
	Items           []Item `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// Item is one cart line with the per-unit variant weight in grams.
type Item struct {
	shared.BaseEntity
	CartID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(300)"`
	Quantity    int64     `gorm:"not null;default:1"`
	WeightGrams int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "cart_items"
}

// NewCart creates a cart with the given currency.
func NewCart(currencyCode string) (*Cart, error) {
	if currencyCode == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CurrencyCode:      strings.ToLower(currencyCode),
	}, nil
}

// AddItem appends a line item.
func (c *Cart) AddItem(title string, quantity, weightGrams int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if weightGrams < 0 {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	c.Items = append(c.Items, Item{
		BaseEntity:  shared.NewBaseEntity(),
		CartID:      c.ID,
		Title:       title,
		Quantity:    quantity,
		WeightGrams: weightGrams,
	})
	return nil
}

// TotalWeightGrams sums item weights times quantities. Zero-weight carts
// are valid; weight floors are applied by the pricing callers, not here.
func (c *Cart) TotalWeightGrams() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.WeightGrams * item.Quantity
	}
	return total
}
