package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for carts.
type Repository interface {
	// FindByID finds a cart with its items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// Save creates or updates a cart together with its items
	Save(ctx context.Context, cart *Cart) error
}
