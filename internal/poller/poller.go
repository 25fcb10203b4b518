package poller

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/phinehas2020/havis-candy/internal/orders"
	"github.com/phinehas2020/havis-candy/internal/publisher"
)

// OrderStore is the slice of the orders repository the poller needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, order orders.Order) error
}

// Poller drains order-completed events into the order archive.
type Poller struct {
	store  OrderStore
	reader *kafka.Reader
}

func NewPoller(store OrderStore, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    publisher.Topic,
		GroupID:  "storefront-order-archive",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{store: store, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		m, err := p.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("error reading order event: %v", err)
			}
			continue
		}
		p.processMessage(ctx, m.Value)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		log.Printf("error closing order event reader: %v", err)
	}
}

// processMessage records one order. Bad payloads and duplicates are
// logged and dropped; the event stream must keep moving.
func (p *Poller) processMessage(ctx context.Context, value []byte) {
	var order orders.Order
	if err := json.Unmarshal(value, &order); err != nil {
		log.Printf("error parsing order event: %v", err)
		return
	}
	if order.SessionID == "" {
		log.Println("order event missing session id")
		return
	}

	err := p.store.CreateOrder(ctx, order)
	if err != nil && !errors.Is(err, orders.ErrDuplicateSession) {
		log.Printf("error recording order for session %s: %v", order.SessionID, err)
	}
}
