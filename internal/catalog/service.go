package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/palstyle/storefront/internal/domain"
)

var ErrInvalidProduct = errors.New("invalid product")

// Service holds the authoritative product list and its bulk import/export
// operations. Cart and checkout never mutate the catalog; stock is
// informational and no reservation happens on purchase.
type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Add(ctx context.Context, product domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: negative stock", ErrInvalidProduct)
	}
	return s.repo.Insert(ctx, &product)
}

func (s *Service) Update(ctx context.Context, id string, update domain.ProductUpdate) error {
	if update.Price != nil && *update.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	return s.repo.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ImportBulk appends externally-sourced products to the catalog without
// de-duplication, mirroring platform export/import behavior.
func (s *Service) ImportBulk(ctx context.Context, products []*domain.Product) error {
	return s.repo.InsertBulk(ctx, products)
}

// ImportCSV parses a delimited export and appends the parsed rows.
// Returns how many rows imported and the per-row failures.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, []RowError, error) {
	products, rowErrs, err := ParseProductsCSV(r)
	if err != nil {
		return 0, nil, err
	}
	for _, re := range rowErrs {
		log.Printf("catalog import: skipped %v", re)
	}
	if len(products) == 0 {
		return 0, rowErrs, nil
	}
	if err := s.ImportBulk(ctx, products); err != nil {
		return 0, rowErrs, err
	}
	return len(products), rowErrs, nil
}

// ExportCSV serializes the full catalog in the fixed export schema.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	return WriteProductsCSV(w, products)
}
