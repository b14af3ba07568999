package repository

import (
	"context"
	"errors"

	"github.com/palstyle/storefront/internal/domain"
)

// CartRepository defines the interface for cart data operations
// Consumers define this interface, not the storage implementation
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	// SetItem inserts the line item or replaces the one with the same
	// (product id, size) key.
	SetItem(ctx context.Context, userID string, item domain.LineItem) error
	RemoveItem(ctx context.Context, userID string, key domain.LineKey) error
	DeleteCart(ctx context.Context, userID string) error
}

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)
