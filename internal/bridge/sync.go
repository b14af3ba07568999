package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/palstyle/storefront/internal/domain"
)

var ErrSyncInProgress = errors.New("sync already in progress")

// CatalogLister supplies the products pushed out during a sync.
type CatalogLister interface {
	List(ctx context.Context) ([]*domain.Product, error)
}

// RuleDispatcher lets a completed sync fire automation rules.
type RuleDispatcher interface {
	Dispatch(trigger domain.RuleTrigger, context string) int
}

type SyncResult struct {
	Pushed    int               `json:"pushed"`
	Orders    []domain.Order    `json:"orders"`
	Customers []domain.Customer `json:"customers"`
	SyncedAt  time.Time         `json:"synced_at"`
}

// SyncService runs the full channel synchronization: authenticate every
// bridge, push the catalog out, pull orders and customers back in. One
// sync runs at a time; the merged pull results are kept for reads between
// syncs.
type SyncService struct {
	catalog    CatalogLister
	bridges    []MarketplaceBridge
	dispatcher RuleDispatcher

	mu        sync.Mutex
	syncing   bool
	orders    []domain.Order
	customers []domain.Customer
	lastSync  time.Time
}

func NewSyncService(catalog CatalogLister, dispatcher RuleDispatcher, bridges ...MarketplaceBridge) *SyncService {
	return &SyncService{
		catalog:    catalog,
		bridges:    bridges,
		dispatcher: dispatcher,
	}
}

// Syncing reports whether a sync is currently running.
func (s *SyncService) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// Orders returns the merged channel orders from the last sync, newest first.
func (s *SyncService) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...)
}

// Customers returns the merged channel customers from the last sync.
func (s *SyncService) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Customer(nil), s.customers...)
}

func (s *SyncService) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// Sync runs one full synchronization round. Authentication must succeed on
// every bridge before anything moves; a failure anywhere aborts the round
// and leaves the previous pull results intact.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	if err := s.authenticateAll(ctx); err != nil {
		return nil, err
	}

	pushed, err := s.pushCatalog(ctx)
	if err != nil {
		return nil, err
	}

	orders, customers, err := s.pullAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})

	if s.dispatcher != nil && len(orders) > 0 {
		s.dispatcher.Dispatch(domain.TriggerOrderCreated, fmt.Sprintf("Order #%s", orders[0].OrderNumber))
	}

	now := time.Now()
	s.mu.Lock()
	s.orders = orders
	s.customers = customers
	s.lastSync = now
	s.mu.Unlock()

	log.Printf("sync: pushed %d products, pulled %d orders, %d customers", pushed, len(orders), len(customers))

	return &SyncResult{
		Pushed:    pushed,
		Orders:    append([]domain.Order(nil), orders...),
		Customers: append([]domain.Customer(nil), customers...),
		SyncedAt:  now,
	}, nil
}

func (s *SyncService) authenticateAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range s.bridges {
		b := b
		g.Go(func() error {
			if err := b.Authenticate(gctx); err != nil {
				return fmt.Errorf("%s: %w", b.Platform(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *SyncService) pushCatalog(ctx context.Context) (int, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list catalog: %w", err)
	}

	var mu sync.Mutex
	total := 0
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range s.bridges {
		b := b
		g.Go(func() error {
			n, err := b.PushCatalog(gctx, products)
			if err != nil {
				return fmt.Errorf("%s: %w", b.Platform(), err)
			}
			mu.Lock()
			total += n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SyncService) pullAll(ctx context.Context) ([]domain.Order, []domain.Customer, error) {
	orderSlots := make([][]domain.Order, len(s.bridges))
	customerSlots := make([][]domain.Customer, len(s.bridges))

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range s.bridges {
		i, b := i, b
		g.Go(func() error {
			o, err := b.FetchOrders(gctx)
			if err != nil {
				return fmt.Errorf("%s orders: %w", b.Platform(), err)
			}
			orderSlots[i] = o
			return nil
		})
		g.Go(func() error {
			c, err := b.FetchCustomers(gctx)
			if err != nil {
				return fmt.Errorf("%s customers: %w", b.Platform(), err)
			}
			customerSlots[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var orders []domain.Order
	var customers []domain.Customer
	for i := range s.bridges {
		orders = append(orders, orderSlots[i]...)
		customers = append(customers, customerSlots[i]...)
	}
	return orders, customers, nil
}
