package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/palstyle/storefront/internal/domain"
)

// MemoryRepository implements OrderRepository with in-memory storage
type MemoryRepository struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*domain.Order
	byCheckout map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:     make(map[uuid.UUID]*domain.Order),
		byCheckout: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.CheckoutID != "" {
		if _, exists := r.byCheckout[order.CheckoutID]; exists {
			return ErrDuplicateCheckout
		}
	}

	cp := *order
	cp.Items = append([]domain.OrderItem(nil), order.Items...)
	r.orders[cp.ID] = &cp
	if cp.CheckoutID != "" {
		r.byCheckout[cp.CheckoutID] = cp.ID
	}
	return nil
}

func (r *MemoryRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	cp := *order
	cp.Items = append([]domain.OrderItem(nil), order.Items...)
	return &cp, nil
}

func (r *MemoryRepository) ListOrders(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*domain.Order) bool { return true }), nil
}

func (r *MemoryRepository) ListOrdersByPlatform(_ context.Context, platform domain.Platform) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o *domain.Order) bool { return o.Platform == platform }), nil
}

// collect returns matching orders newest first. Caller holds the lock.
func (r *MemoryRepository) collect(match func(*domain.Order) bool) []*domain.Order {
	var out []*domain.Order
	for _, order := range r.orders {
		if !match(order) {
			continue
		}
		cp := *order
		cp.Items = append([]domain.OrderItem(nil), order.Items...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out
}

func (r *MemoryRepository) Close() error {
	return nil
}
