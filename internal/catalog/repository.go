package catalog

import (
	"context"
	"errors"

	"github.com/palstyle/storefront/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product id already exists")
)

// ProductRepository defines the interface for catalog storage operations
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	// InsertBulk appends imported products as-is, without de-duplicating
	// against existing ids. Re-importing an export is expected usage.
	InsertBulk(ctx context.Context, products []*domain.Product) error
	Update(ctx context.Context, id string, update domain.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	Close() error
}
