package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/palstyle/storefront/internal/domain"
	"github.com/palstyle/storefront/internal/events"
)

// Consumer ingests order-placed events from Kafka into the order store.
// Duplicate deliveries are dropped via the checkout_id constraint.
type Consumer struct {
	repo   OrderRepository
	reader *kafka.Reader
}

func NewConsumer(repo OrderRepository, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    events.Topic,
		GroupID:  "storefront-orders",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{repo, reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("error reading message: %v", err)
		return
	}

	if eventType(m) != events.EventTypeOrderPlaced {
		return
	}

	order, err := decodeOrder(m.Value)
	if err != nil {
		log.Printf("error parsing message: %v", err)
		return
	}

	if err := c.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateCheckout) {
			log.Printf("order for checkout %s already exists, skipping", order.CheckoutID)
			return
		}
		log.Printf("failed to create order for checkout %s: %v", order.CheckoutID, err)
		return
	}

	log.Printf("order %s recorded for checkout %s", order.OrderNumber, order.CheckoutID)
}

func eventType(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

func decodeOrder(payload []byte) (*domain.Order, error) {
	var order domain.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, err
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusConfirmed
	}
	return &order, nil
}
