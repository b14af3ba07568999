package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/palstyle/storefront/internal/domain"
)

// MemoryRepository implements ProductRepository with in-memory storage.
// Order of insertion is preserved, matching the sqlite rowid ordering.
type MemoryRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewMemoryRepositoryWithSeed loads the startup catalog.
func NewMemoryRepositoryWithSeed(seed []domain.Product) *MemoryRepository {
	r := NewMemoryRepository()
	for i := range seed {
		p := seed[i]
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		r.products = append(r.products, &p)
	}
	return r
}

func (m *MemoryRepository) GetAll(_ context.Context) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Product, len(m.products))
	for i, p := range m.products {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *MemoryRepository) Insert(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == product.ID {
			return ErrDuplicateProduct
		}
	}

	cp := *product
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.products = append(m.products, &cp)
	return nil
}

func (m *MemoryRepository) InsertBulk(_ context.Context, products []*domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, product := range products {
		cp := *product
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = now
		}
		m.products = append(m.products, &cp)
	}
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, id string, update domain.ProductUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == id {
			update.ApplyTo(p)
			return nil
		}
	}
	return nil // no-op on unknown id
}

func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return nil // no-op on unknown id
}

func (m *MemoryRepository) Close() error {
	return nil
}
