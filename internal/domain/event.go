package domain

// Events are emitted by the cart ledger and checkout flow and consumed by
// subscribers (the automation engine, the kafka publisher). Emitting is
// fire-and-forget; no subscriber failure reaches the shopper path.

type LowStockEvent struct {
	Product Product
}

type OrderPlacedEvent struct {
	Order Order
}

// EventSink receives domain events. Implementations must not block the
// caller; slow work belongs on the subscriber's own goroutine.
type EventSink interface {
	OnLowStock(e LowStockEvent)
	OnOrderPlaced(e OrderPlacedEvent)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) OnLowStock(LowStockEvent)       {}
func (NopSink) OnOrderPlaced(OrderPlacedEvent) {}

// FanoutSink delivers each event to every member sink in order.
type FanoutSink []EventSink

func (f FanoutSink) OnLowStock(e LowStockEvent) {
	for _, s := range f {
		s.OnLowStock(e)
	}
}

func (f FanoutSink) OnOrderPlaced(e OrderPlacedEvent) {
	for _, s := range f {
		s.OnOrderPlaced(e)
	}
}
