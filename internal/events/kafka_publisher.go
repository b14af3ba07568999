package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/palstyle/storefront/internal/domain"
)

// Topic carries both order-placed and stock-low events; consumers filter
// on the event_type header.
const Topic = "storefront-events"

const (
	EventTypeOrderPlaced = "OrderPlaced"
	EventTypeStockLow    = "StockLow"
)

// KafkaPublisher pushes domain events onto Kafka so out-of-process workers
// (order ingestion, future analytics) can consume them. It implements
// domain.EventSink; writes run off the caller's goroutine and failures are
// logged, never propagated.
type KafkaPublisher struct {
	writer  *kafka.Writer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) OnOrderPlaced(e domain.OrderPlacedEvent) {
	// Key by checkout id so retries for the same checkout stay ordered
	p.publish(e.Order.CheckoutID, EventTypeOrderPlaced, e.Order)
}

func (p *KafkaPublisher) OnLowStock(e domain.LowStockEvent) {
	p.publish(e.Product.ID, EventTypeStockLow, e.Product)
}

func (p *KafkaPublisher) publish(key, eventType string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("events: failed to marshal %s payload: %v", eventType, err)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		msg := kafka.Message{
			Key:   []byte(key),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(eventType)},
			},
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("events: failed to publish %s for %s: %v", eventType, key, err)
		}
	}()
}

// Close waits for in-flight publishes and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.wg.Wait()
	return p.writer.Close()
}
