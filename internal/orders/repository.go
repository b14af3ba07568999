package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/palstyle/storefront/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateCheckout means an order for this checkout already exists.
	// Kafka delivers at-least-once; the unique checkout_id constraint makes
	// order creation idempotent.
	ErrDuplicateCheckout = errors.New("order for this checkout already exists")
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByPlatform(ctx context.Context, platform domain.Platform) ([]*domain.Order, error)
	Close() error
}
