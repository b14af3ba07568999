package repository

import (
	"context"
	"sync"
	"time"

	"github.com/palstyle/storefront/internal/domain"
)

// MemoryRepository implements CartRepository with in-memory storage. It is
// the default backend for the single-binary storefront; the Mongo
// repository serves multi-instance deployments.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart // userID -> cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (m *MemoryRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, exists := m.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (m *MemoryRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stored := copyCart(cart)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	m.carts[cart.UserID] = stored
	return nil
}

func (m *MemoryRepository) SetItem(_ context.Context, userID string, item domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	cart, exists := m.carts[userID]
	if !exists {
		m.carts[userID] = &domain.Cart{
			UserID:    userID,
			Items:     []domain.LineItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	}

	cart.UpdatedAt = now
	for i := range cart.Items {
		if cart.Items[i].Key() == item.Key() {
			cart.Items[i] = item
			return nil
		}
	}
	cart.Items = append(cart.Items, item)
	return nil
}

func (m *MemoryRepository) RemoveItem(_ context.Context, userID string, key domain.LineKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, exists := m.carts[userID]
	if !exists {
		return ErrCartNotFound
	}

	for i, item := range cart.Items {
		if item.Key() == key {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

func (m *MemoryRepository) DeleteCart(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.carts[userID]; !exists {
		return ErrCartNotFound
	}
	delete(m.carts, userID)
	return nil
}

// copyCart guards callers from aliasing the stored line item slice.
func copyCart(cart *domain.Cart) *domain.Cart {
	c := *cart
	c.Items = make([]domain.LineItem, len(cart.Items))
	copy(c.Items, cart.Items)
	return &c
}
