package http

import (
	"context"
	"sync"

	"github.com/phinehas2020/havis-candy/internal/cart"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

// memoryCartStore is an in-process cart.Store for handler tests.
type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string][]cart.Item
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string][]cart.Item)}
}

func (m *memoryCartStore) Load(_ context.Context, cartID string) ([]cart.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.carts[cartID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return items, nil
}

func (m *memoryCartStore) Save(_ context.Context, cartID string, items []cart.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = items
	return nil
}

func (m *memoryCartStore) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}

// stubPayments implements payment.Client with per-method overrides.
// Unset methods return payment.ErrNotFound.
type stubPayments struct {
	getPrice      func(ctx context.Context, priceID string) (*payment.Price, error)
	createSession func(ctx context.Context, params payment.SessionParams) (*payment.Session, error)
	getSession    func(ctx context.Context, sessionID string) (*payment.Session, error)
	createProduct func(ctx context.Context, input payment.ProductInput) (*payment.Product, error)
	createPrice   func(ctx context.Context, productID string, unitAmount int64) (*payment.Price, error)
	updateProduct func(ctx context.Context, productID string, input payment.ProductInput) error
}

func (s *stubPayments) GetPrice(ctx context.Context, priceID string) (*payment.Price, error) {
	if s.getPrice != nil {
		return s.getPrice(ctx, priceID)
	}
	return nil, payment.ErrNotFound
}

func (s *stubPayments) ListActivePrices(context.Context, string) ([]payment.Price, error) {
	return nil, nil
}

func (s *stubPayments) SearchProductByContentID(context.Context, string) (*payment.Product, error) {
	return nil, payment.ErrNotFound
}

func (s *stubPayments) CreateProduct(ctx context.Context, input payment.ProductInput) (*payment.Product, error) {
	if s.createProduct != nil {
		return s.createProduct(ctx, input)
	}
	return nil, payment.ErrNotFound
}

func (s *stubPayments) UpdateProduct(ctx context.Context, productID string, input payment.ProductInput) error {
	if s.updateProduct != nil {
		return s.updateProduct(ctx, productID, input)
	}
	return payment.ErrNotFound
}

func (s *stubPayments) ArchiveProduct(context.Context, string) error { return nil }

func (s *stubPayments) CreatePrice(ctx context.Context, productID string, unitAmount int64) (*payment.Price, error) {
	if s.createPrice != nil {
		return s.createPrice(ctx, productID, unitAmount)
	}
	return nil, payment.ErrNotFound
}

func (s *stubPayments) ArchivePrice(context.Context, string) error { return nil }

func (s *stubPayments) CreateSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error) {
	if s.createSession != nil {
		return s.createSession(ctx, params)
	}
	return nil, payment.ErrNotFound
}

func (s *stubPayments) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	if s.getSession != nil {
		return s.getSession(ctx, sessionID)
	}
	return nil, payment.ErrNotFound
}
