package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/palstyle/storefront/internal/cart/cache"
	"github.com/palstyle/storefront/internal/cart/repository"
	"github.com/palstyle/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// LowStockThreshold is the stock level at or below which adding a product
// to a cart emits a low-stock event.
const LowStockThreshold = 5

// Ledger maintains the set of line items each shopper intends to purchase.
// Line items are keyed by (product id, size variant): adding the same pair
// again merges into the existing line instead of creating a duplicate.
type Ledger struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sink  domain.EventSink
	sfg   singleflight.Group // Prevents cache stampede

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-user write serialization
}

func NewLedger(repo repository.CartRepository, cache cache.CartCache, sink domain.EventSink) *Ledger {
	if sink == nil {
		sink = domain.NopSink{}
	}
	return &Ledger{
		repo:  repo,
		cache: cache,
		sink:  sink,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock serializes mutations per cart instance. Reads stay lock-free;
// the single-writer guarantee only has to hold for the write path.
func (l *Ledger) userLock(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

func (l *Ledger) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := l.sfg.Do(userID, func() (interface{}, error) {
		cart, err := l.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cart cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := l.repo.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			// A shopper with no cart yet sees an empty one.
			return &domain.Cart{
				UserID:    userID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := l.cache.Set(context.Background(), userID, cart); errSet != nil {
				log.Printf("cart cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// Add puts one unit of the product at the given size into the cart. An
// empty or unknown size falls back to the default. A line with the same
// (product id, size) key gains quantity instead of duplicating.
func (l *Ledger) Add(ctx context.Context, userID string, product domain.Product, size domain.SizeVariant) error {
	if !size.Valid() {
		size = domain.DefaultSize
	}

	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	item, err := l.mergedLine(ctx, userID, product, size, 1)
	if err != nil {
		return err
	}
	if errSet := l.repo.SetItem(ctx, userID, *item); errSet != nil {
		log.Printf("cart set item error: %v", errSet)
		return errSet
	}
	l.invalidate(userID)

	if product.Stock <= LowStockThreshold {
		l.sink.OnLowStock(domain.LowStockEvent{Product: product})
	}
	return nil
}

// Adjust applies a +1/-1 quantity delta, the contract behind the cart
// drawer's plus and minus controls. Decrementing a quantity-1 line removes
// it; decrementing a missing line is a no-op.
func (l *Ledger) Adjust(ctx context.Context, userID string, product domain.Product, size domain.SizeVariant, delta int) error {
	if delta >= 0 {
		return l.Add(ctx, userID, product, size)
	}
	if !size.Valid() {
		size = domain.DefaultSize
	}

	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	key := domain.LineKey{ProductID: product.ID, Size: size}
	cart, err := l.repo.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	line := cart.Find(key)
	if line == nil {
		return nil
	}

	if line.Quantity <= 1 {
		return l.removeLocked(ctx, userID, key)
	}

	line.Quantity--
	if errSet := l.repo.SetItem(ctx, userID, *line); errSet != nil {
		log.Printf("cart decrement error: %v", errSet)
		return errSet
	}
	l.invalidate(userID)
	return nil
}

// Remove deletes the matching line item. A missing line or cart is not an
// error; remove is idempotent.
func (l *Ledger) Remove(ctx context.Context, userID string, key domain.LineKey) error {
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return l.removeLocked(ctx, userID, key)
}

func (l *Ledger) removeLocked(ctx context.Context, userID string, key domain.LineKey) error {
	err := l.repo.RemoveItem(ctx, userID, key)
	if errors.Is(err, repository.ErrCartNotFound) || errors.Is(err, repository.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("cart remove item error: %v", err)
		return err
	}
	l.invalidate(userID)
	return nil
}

// Clear empties the cart, used when checkout reaches confirmation.
func (l *Ledger) Clear(ctx context.Context, userID string) error {
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	err := l.repo.DeleteCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("cart clear error: %v", err)
		return err
	}
	l.invalidate(userID)
	return nil
}

// mergedLine computes the post-add state of the (product, size) line.
func (l *Ledger) mergedLine(ctx context.Context, userID string, product domain.Product, size domain.SizeVariant, delta int) (*domain.LineItem, error) {
	key := domain.LineKey{ProductID: product.ID, Size: size}

	cart, err := l.repo.GetCart(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	if cart != nil {
		if line := cart.Find(key); line != nil {
			merged := *line
			merged.Quantity += delta
			return &merged, nil
		}
	}

	// First add of this pair: snapshot the product fields. The cart keeps
	// the price the shopper saw, not the live catalog record.
	return &domain.LineItem{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		Size:        size,
		Quantity:    delta,
		AddedAt:     time.Now(),
	}, nil
}

func (l *Ledger) invalidate(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.cache.Delete(ctx, userID); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}
