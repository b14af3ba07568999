package checkout

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palstyle/storefront/internal/domain"
)

type fakeLedger struct {
	mu      sync.Mutex
	carts   map[string]*domain.Cart
	cleared []string
	getErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{carts: make(map[string]*domain.Cart)}
}

func (f *fakeLedger) Get(_ context.Context, userID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if cart, ok := f.carts[userID]; ok {
		cp := *cart
		return &cp, nil
	}
	return &domain.Cart{UserID: userID}, nil
}

func (f *fakeLedger) Clear(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, userID)
	f.cleared = append(f.cleared, userID)
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	orders []domain.OrderPlacedEvent
}

func (r *recordingSink) OnLowStock(domain.LowStockEvent) {}

func (r *recordingSink) OnOrderPlaced(e domain.OrderPlacedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, e)
}

func (r *recordingSink) placed() []domain.OrderPlacedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.OrderPlacedEvent(nil), r.orders...)
}

func testCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items: []domain.LineItem{
			{ProductID: "PLS-SLV-104", Name: "Silver Chain", Price: 149.90, Size: domain.SizeM, Quantity: 2},
			{ProductID: "PLS-HOD-107", Name: "Oversize Hoodie", Price: 89.50, Size: domain.SizeL, Quantity: 1},
		},
	}
}

func completeShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName:  "Derin",
		LastName:   "Aksoy",
		Address:    "Istiklal Cd. 48",
		City:       "Istanbul",
		PostalCode: "34000",
	}
}

func newTestService(t *testing.T, ledger *fakeLedger, sink domain.EventSink) *Service {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, ledger, &SimulatedGateway{}, sink)
}

func TestStart_EmptyCartRejected(t *testing.T) {
	svc := newTestService(t, newFakeLedger(), nil)

	_, err := svc.Start(context.Background(), "user-1", "USD")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestStart_SnapshotsCartTotal(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)

	assert.Equal(t, domain.StepShippingInfo, session.Step)
	assert.Len(t, session.Snapshot.Items, 2)
	assert.InDelta(t, 2*149.90+89.50, session.Snapshot.TotalAmount, 1e-9)
	assert.InDelta(t, 2*149.90, session.Snapshot.Items[0].Subtotal, 1e-9)
	assert.Equal(t, "USD", session.Snapshot.Currency)
}

func TestStart_LaterCartEditsDoNotReprice(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)
	captured := session.Snapshot.TotalAmount

	// Cart changes after the session opened
	ledger.carts["user-1"].Items[0].Quantity = 10

	got, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.InDelta(t, captured, got.Snapshot.TotalAmount, 1e-9)
}

func TestSubmitShipping_IncompleteRejected(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)

	info := completeShipping()
	info.PostalCode = ""
	_, err = svc.SubmitShipping(context.Background(), session.ID, info)
	require.ErrorIs(t, err, ErrShippingIncomplete)

	got, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepShippingInfo, got.Step)
}

func TestSubmitShipping_AdvancesToPayment(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)

	got, err := svc.SubmitShipping(context.Background(), session.ID, completeShipping())
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, got.Step)
	assert.Equal(t, "Istanbul", got.Shipping.City)
}

func TestBack_RetainsShippingData(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)
	_, err = svc.SubmitShipping(context.Background(), session.ID, completeShipping())
	require.NoError(t, err)

	got, err := svc.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepShippingInfo, got.Step)
	assert.Equal(t, completeShipping(), got.Shipping)
}

func TestBack_OnlyFromPayment(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)

	_, err = svc.Back(context.Background(), session.ID)
	require.ErrorIs(t, err, IllegalTransitionError)
}

func TestPay_BeforeShippingRejected(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	svc := newTestService(t, ledger, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), session.ID, PaymentCard{Number: "4242424242424242"})
	require.ErrorIs(t, err, IllegalTransitionError)
}

func TestPay_SuccessReachesConfirmation(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	sink := &recordingSink{}
	svc := newTestService(t, ledger, sink)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)
	_, err = svc.SubmitShipping(context.Background(), session.ID, completeShipping())
	require.NoError(t, err)

	got, err := svc.Pay(context.Background(), session.ID, PaymentCard{Number: "4242424242424242"})
	require.NoError(t, err)

	assert.Equal(t, domain.StepConfirmation, got.Step)
	assert.False(t, got.Processing)
	assert.Regexp(t, regexp.MustCompile(`^PAL-\d{5}$`), got.OrderNumber)
	assert.Empty(t, got.DeclineReason)

	// Confirmed order empties the cart
	assert.Equal(t, []string{"user-1"}, ledger.cleared)

	orders := sink.placed()
	require.Len(t, orders, 1)
	assert.Equal(t, got.OrderNumber, orders[0].Order.OrderNumber)
	assert.Equal(t, "Derin Aksoy", orders[0].Order.Customer)
	assert.Equal(t, domain.PlatformApp, orders[0].Order.Platform)
	assert.InDelta(t, got.Snapshot.TotalAmount, orders[0].Order.TotalAmount, 1e-9)
}

func TestPay_DeclinedReturnsToPayment(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	sink := &recordingSink{}
	svc := newTestService(t, ledger, sink)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)
	_, err = svc.SubmitShipping(context.Background(), session.ID, completeShipping())
	require.NoError(t, err)

	got, err := svc.Pay(context.Background(), session.ID, PaymentCard{Number: "4000000000000002"})
	require.NoError(t, err)

	assert.Equal(t, domain.StepPayment, got.Step)
	assert.False(t, got.Processing)
	assert.Equal(t, "card declined", got.DeclineReason)
	assert.Empty(t, got.OrderNumber)

	assert.Empty(t, ledger.cleared)
	assert.Empty(t, sink.placed())

	// Shopper can retry with a good card
	retry, err := svc.Pay(context.Background(), session.ID, PaymentCard{Number: "4242424242424242"})
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, retry.Step)
	assert.Empty(t, retry.DeclineReason)
}

func TestPay_GatewayErrorSurfacedAndRetryable(t *testing.T) {
	ledger := newFakeLedger()
	ledger.carts["user-1"] = testCart("user-1")
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	gatewayErr := errors.New("connection refused")
	svc := NewService(store, ledger, failingGateway{err: gatewayErr}, nil)

	session, err := svc.Start(context.Background(), "user-1", "USD")
	require.NoError(t, err)
	_, err = svc.SubmitShipping(context.Background(), session.ID, completeShipping())
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), session.ID, PaymentCard{Number: "4242424242424242"})
	require.ErrorIs(t, err, gatewayErr)

	got, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, got.Step)
	assert.NotEmpty(t, got.DeclineReason)
}

func TestPay_UnknownSession(t *testing.T) {
	svc := newTestService(t, newFakeLedger(), nil)

	_, err := svc.Pay(context.Background(), "no-such-session", PaymentCard{})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

type failingGateway struct {
	err error
}

func (g failingGateway) Charge(context.Context, ChargeRequest) (*ChargeResult, error) {
	return nil, g.err
}

func TestSimulatedGateway(t *testing.T) {
	g := &SimulatedGateway{}

	res, err := g.Charge(context.Background(), ChargeRequest{Amount: 100, Card: PaymentCard{Number: "4242424242424242"}})
	require.NoError(t, err)
	assert.Equal(t, ChargeStatusSuccess, res.Status)
	assert.NotEmpty(t, res.PaymentID)

	res, err = g.Charge(context.Background(), ChargeRequest{Amount: 100, Card: PaymentCard{Number: "4000000000000002"}})
	require.NoError(t, err)
	assert.Equal(t, ChargeStatusDeclined, res.Status)
	assert.Equal(t, "card declined", res.Reason)

	res, err = g.Charge(context.Background(), ChargeRequest{Amount: 0, Card: PaymentCard{Number: "4242424242424242"}})
	require.NoError(t, err)
	assert.Equal(t, ChargeStatusDeclined, res.Status)
}

func TestSimulatedGateway_RespectsContext(t *testing.T) {
	g := &SimulatedGateway{Delay: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Charge(ctx, ChargeRequest{Amount: 100, Card: PaymentCard{Number: "4242424242424242"}})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
