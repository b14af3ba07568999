package checkout

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/palstyle/storefront/internal/domain"
)

// CartLedger is the slice of the cart the checkout flow needs: a snapshot
// to price the order and a clear once the order is placed.
type CartLedger interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// Service walks a shopper through the fixed shipping -> payment ->
// confirmation sequence. Steps only move on explicit proceed/back calls;
// nothing auto-advances.
type Service struct {
	sessions SessionStore
	cart     CartLedger
	gateway  PaymentGateway
	sink     domain.EventSink
	timeout  time.Duration
}

func NewService(sessions SessionStore, cart CartLedger, gateway PaymentGateway, sink domain.EventSink) *Service {
	if sink == nil {
		sink = domain.NopSink{}
	}
	return &Service{
		sessions: sessions,
		cart:     cart,
		gateway:  gateway,
		sink:     sink,
		timeout:  30 * time.Second,
	}
}

// Start opens a checkout session over the cart's current contents. The
// total is captured here; later cart edits do not reprice the session.
func (s *Service) Start(ctx context.Context, userID, currency string) (*domain.CheckoutSession, error) {
	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if cart.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	if currency == "" {
		currency = "USD"
	}

	session := &domain.CheckoutSession{
		ID:       uuid.NewString(),
		UserID:   userID,
		Step:     domain.StepShippingInfo,
		Snapshot: snapshotCart(cart, currency),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	return s.sessions.Get(ctx, sessionID)
}

// SubmitShipping records the shipping manifest and advances to Payment.
// All shipping fields must be non-empty.
func (s *Service) SubmitShipping(ctx context.Context, sessionID string, info domain.ShippingInfo) (*domain.CheckoutSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionTo(session.Step, domain.StepPayment) {
		return nil, IllegalTransitionError
	}
	if !info.Complete() {
		return nil, ErrShippingIncomplete
	}

	session.Shipping = info
	session.Step = domain.StepPayment
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back returns from Payment to ShippingInfo. The previously entered
// shipping data stays on the session.
func (s *Service) Back(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepPayment ||
		!domain.CanTransitionTo(session.Step, domain.StepShippingInfo) {
		return nil, IllegalTransitionError
	}

	session.Step = domain.StepShippingInfo
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Pay authorizes the captured total. A declined charge returns the
// session to Payment with the reason set; a successful charge reaches
// Confirmation, clears the cart and emits the order-placed event.
func (s *Service) Pay(ctx context.Context, sessionID string, card PaymentCard) (*domain.CheckoutSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionTo(session.Step, domain.StepProcessing) {
		return nil, IllegalTransitionError
	}

	session.Step = domain.StepProcessing
	session.Processing = true
	session.DeclineReason = ""
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, chargeErr := s.gateway.Charge(chargeCtx, ChargeRequest{
		CheckoutID: session.ID,
		Amount:     session.Snapshot.TotalAmount,
		Currency:   session.Snapshot.Currency,
		Card:       card,
	})
	if chargeErr != nil {
		// Gateway unreachable: surface the error and let the shopper retry
		// from the Payment step.
		if err := s.declined(ctx, session, "payment could not be processed"); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to charge payment: %w", chargeErr)
	}
	if result.Status != ChargeStatusSuccess {
		if err := s.declined(ctx, session, result.Reason); err != nil {
			return nil, err
		}
		return s.sessions.Get(ctx, sessionID)
	}

	session.Step = domain.StepConfirmation
	session.Processing = false
	session.OrderNumber = fmt.Sprintf("PAL-%05d", rand.Intn(100000))
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	// Standard e-commerce contract: a confirmed order empties the cart.
	if err := s.cart.Clear(ctx, session.UserID); err != nil {
		log.Printf("failed to clear cart after checkout %s: %v", session.ID, err)
	}

	s.sink.OnOrderPlaced(domain.OrderPlacedEvent{Order: orderFromSession(session)})

	return session, nil
}

func (s *Service) declined(ctx context.Context, session *domain.CheckoutSession, reason string) error {
	session.Step = domain.StepPayment
	session.Processing = false
	session.DeclineReason = reason
	if err := s.sessions.Put(ctx, session); err != nil {
		return err
	}
	return nil
}

func snapshotCart(cart *domain.Cart, currency string) domain.CartSnapshot {
	items := make([]domain.CartSnapshotItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = domain.CartSnapshotItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
			Subtotal:    line.Subtotal(),
		}
	}
	return domain.CartSnapshot{
		Items:       items,
		TotalAmount: cart.Total(),
		Currency:    currency,
		CapturedAt:  time.Now(),
	}
}

func orderFromSession(session *domain.CheckoutSession) domain.Order {
	items := make([]domain.OrderItem, len(session.Snapshot.Items))
	for i, it := range session.Snapshot.Items {
		items[i] = domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
		}
	}
	customer := session.Shipping.FirstName
	if session.Shipping.LastName != "" {
		customer += " " + session.Shipping.LastName
	}
	return domain.Order{
		ID:          uuid.New(),
		OrderNumber: session.OrderNumber,
		CheckoutID:  session.ID,
		Customer:    customer,
		Platform:    domain.PlatformApp,
		Status:      domain.OrderStatusConfirmed,
		TotalAmount: session.Snapshot.TotalAmount,
		Currency:    session.Snapshot.Currency,
		Items:       items,
		PlacedAt:    time.Now(),
	}
}
