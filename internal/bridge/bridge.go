package bridge

import (
	"context"
	"errors"

	"github.com/palstyle/storefront/internal/domain"
)

var ErrAuthFailed = errors.New("marketplace authentication failed")

// MarketplaceBridge connects the storefront to an external sales channel.
// Push sends the catalog out; the Fetch methods pull channel-side state in.
type MarketplaceBridge interface {
	Platform() domain.Platform
	Authenticate(ctx context.Context) error
	PushCatalog(ctx context.Context, products []*domain.Product) (int, error)
	FetchOrders(ctx context.Context) ([]domain.Order, error)
	FetchCustomers(ctx context.Context) ([]domain.Customer, error)
}
