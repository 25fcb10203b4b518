package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/phinehas2020/havis-candy/internal/cart"
	"github.com/phinehas2020/havis-candy/internal/orders"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

// OrderStore archives paid sessions. Optional.
type OrderStore interface {
	CreateOrder(ctx context.Context, order orders.Order) error
}

// OrderPublisher hands paid sessions to downstream consumers. Optional;
// when configured it takes precedence over the direct store write.
type OrderPublisher interface {
	PublishOrderCompleted(ctx context.Context, order orders.Order) error
}

type Service struct {
	payments  payment.Client
	resolver  *Resolver
	carts     *cart.Service
	store     OrderStore
	publisher OrderPublisher
}

func NewService(payments payment.Client, resolver *Resolver, carts *cart.Service, store OrderStore, publisher OrderPublisher) *Service {
	return &Service{
		payments:  payments,
		resolver:  resolver,
		carts:     carts,
		store:     store,
		publisher: publisher,
	}
}

// CreateSession resolves the requested line items and opens a payment
// session. The unresolved list is non-empty when any item failed every
// resolution strategy; in that case no session is created.
func (s *Service) CreateSession(ctx context.Context, origin string, items []LineItemRequest) (*payment.Session, []string, error) {
	resolved, unresolved := s.resolver.Resolve(ctx, items)
	if len(unresolved) > 0 {
		return nil, unresolved, nil
	}

	session, err := s.payments.CreateSession(ctx, payment.SessionParams{
		LineItems:  resolved,
		SuccessURL: origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/products?checkout=canceled",
	})
	if err != nil {
		return nil, nil, err
	}
	return session, nil, nil
}

// ConfirmResult reports what Confirm did with a session.
type ConfirmResult struct {
	Paid        bool
	CartCleared bool
}

// Confirm checks whether a session has been paid and, if so, records the
// order and clears the originating cart. The cart is cleared exactly
// here: payment confirmation is the only event that empties a cart.
func (s *Service) Confirm(ctx context.Context, sessionID, cartID string) (*ConfirmResult, error) {
	session, err := s.payments.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid {
		return &ConfirmResult{Paid: false}, nil
	}

	order := orders.Order{
		SessionID:   session.ID,
		CartID:      cartID,
		AmountTotal: session.AmountTotal,
		Currency:    session.Currency,
		Status:      "paid",
		Items:       orderItems(session.LineItems),
	}
	s.recordOrder(ctx, order)

	result := &ConfirmResult{Paid: true}
	if cartID != "" && s.carts != nil {
		s.carts.Clear(ctx, cartID)
		result.CartCleared = true
	}
	return result, nil
}

func orderItems(lineItems []payment.SessionLineItem) []orders.OrderItem {
	items := make([]orders.OrderItem, 0, len(lineItems))
	for _, li := range lineItems {
		items = append(items, orders.OrderItem{
			Description: li.Description,
			PriceID:     li.PriceID,
			Quantity:    li.Quantity,
			AmountTotal: li.AmountTotal,
		})
	}
	return items
}

// recordOrder is best effort: a lost archive record never blocks the
// customer-facing confirmation. Duplicate sessions are expected when the
// success page is reloaded.
func (s *Service) recordOrder(ctx context.Context, order orders.Order) {
	if s.publisher != nil {
		if err := s.publisher.PublishOrderCompleted(ctx, order); err != nil {
			log.Printf("failed to publish order for session %s: %v", order.SessionID, err)
		}
		return
	}
	if s.store != nil {
		err := s.store.CreateOrder(ctx, order)
		if err != nil && !errors.Is(err, orders.ErrDuplicateSession) {
			log.Printf("failed to record order for session %s: %v", order.SessionID, err)
		}
	}
}
