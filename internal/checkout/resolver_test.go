package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phinehas2020/havis-candy/internal/domain"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

// fakePayments implements payment.Client over in-memory maps.
type fakePayments struct {
	prices        map[string]payment.Price
	pricesByProd  map[string][]payment.Price
	byContentID   map[string]payment.Product
	sessions      []payment.SessionParams
	sessionResult *payment.Session
	getSession    *payment.Session
}

func newFakePayments() *fakePayments {
	return &fakePayments{
		prices:       make(map[string]payment.Price),
		pricesByProd: make(map[string][]payment.Price),
		byContentID:  make(map[string]payment.Product),
		sessionResult: &payment.Session{
			ID:  "cs_test",
			URL: "https://pay.example.com/cs_test",
		},
	}
}

func (f *fakePayments) GetPrice(_ context.Context, priceID string) (*payment.Price, error) {
	price, ok := f.prices[priceID]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return &price, nil
}

func (f *fakePayments) ListActivePrices(_ context.Context, productID string) ([]payment.Price, error) {
	return f.pricesByProd[productID], nil
}

func (f *fakePayments) SearchProductByContentID(_ context.Context, contentID string) (*payment.Product, error) {
	product, ok := f.byContentID[contentID]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return &product, nil
}

func (f *fakePayments) CreateProduct(context.Context, payment.ProductInput) (*payment.Product, error) {
	return nil, nil
}

func (f *fakePayments) UpdateProduct(context.Context, string, payment.ProductInput) error {
	return nil
}

func (f *fakePayments) ArchiveProduct(context.Context, string) error { return nil }

func (f *fakePayments) CreatePrice(context.Context, string, int64) (*payment.Price, error) {
	return nil, nil
}

func (f *fakePayments) ArchivePrice(context.Context, string) error { return nil }

func (f *fakePayments) CreateSession(_ context.Context, params payment.SessionParams) (*payment.Session, error) {
	f.sessions = append(f.sessions, params)
	return f.sessionResult, nil
}

func (f *fakePayments) GetSession(context.Context, string) (*payment.Session, error) {
	if f.getSession == nil {
		return nil, payment.ErrNotFound
	}
	return f.getSession, nil
}

type fakeProducts struct {
	products []domain.Product
}

func (f *fakeProducts) Products(context.Context) []domain.Product {
	return f.products
}

func purchasable(id string) domain.Product {
	return domain.Product{
		ID:                   id,
		Title:                "Caramel " + id,
		Price:                7.95,
		ShortDescription:     "Handmade.",
		ImageURL:             "https://example.com/" + id + ".jpg",
		InStock:              true,
		AvailableForPurchase: true,
	}
}

func TestResolve_DirectActivePrice(t *testing.T) {
	payments := newFakePayments()
	payments.prices["price_1"] = payment.Price{ID: "price_1", Active: true, OneTime: true}
	resolver := NewResolver(payments, &fakeProducts{})

	resolved, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{PriceID: "price_1", Quantity: 2},
	})

	assert.Empty(t, unresolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "price_1", resolved[0].PriceID)
	assert.Equal(t, int64(2), resolved[0].Quantity)
}

func TestResolve_InactivePriceWithoutProductIsUnresolved(t *testing.T) {
	payments := newFakePayments()
	payments.prices["price_old"] = payment.Price{ID: "price_old", Active: false}
	resolver := NewResolver(payments, &fakeProducts{})

	resolved, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{PriceID: "price_old", Quantity: 1},
	})

	assert.Empty(t, resolved)
	assert.Equal(t, []string{"price_old"}, unresolved)
}

func TestResolve_RecoversViaStoredProductRef(t *testing.T) {
	product := purchasable("sorghum")
	product.StripeProductID = "prod_s"
	payments := newFakePayments()
	payments.pricesByProd["prod_s"] = []payment.Price{
		{ID: "price_recurring", Active: true, OneTime: false},
		{ID: "price_onetime", Active: true, OneTime: true},
	}
	resolver := NewResolver(payments, &fakeProducts{products: []domain.Product{product}})

	resolved, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{ProductID: "sorghum", PriceID: "price_stale", Quantity: 1},
	})

	assert.Empty(t, unresolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "price_onetime", resolved[0].PriceID, "first active one-time price wins")
}

func TestResolve_RecoversViaMetadataSearch(t *testing.T) {
	product := purchasable("chai")
	payments := newFakePayments()
	payments.byContentID["chai"] = payment.Product{ID: "prod_found", Active: true}
	payments.pricesByProd["prod_found"] = []payment.Price{
		{ID: "price_found", Active: true, OneTime: true},
	}
	resolver := NewResolver(payments, &fakeProducts{products: []domain.Product{product}})

	resolved, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{ProductID: "chai", PriceID: "price_gone", Quantity: 3},
	})

	assert.Empty(t, unresolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "price_found", resolved[0].PriceID)
}

func TestResolve_FallsBackToInlinePrice(t *testing.T) {
	payments := newFakePayments()
	payments.prices["price_ok"] = payment.Price{ID: "price_ok", Active: true}
	resolver := NewResolver(payments, &fakeProducts{products: []domain.Product{purchasable("sorghum")}})

	resolved, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{PriceID: "price_ok", Quantity: 1},
		{ProductID: "sorghum", PriceID: "price_stale", Quantity: 2},
	})

	assert.Empty(t, unresolved)
	require.Len(t, resolved, 2)
	assert.Equal(t, "price_ok", resolved[0].PriceID)

	inline := resolved[1]
	assert.Empty(t, inline.PriceID)
	require.NotNil(t, inline.PriceData)
	assert.Equal(t, int64(795), inline.PriceData.UnitAmount)
	assert.Equal(t, "usd", inline.PriceData.Currency)
	assert.Equal(t, "Caramel sorghum", inline.PriceData.Name)
	assert.Equal(t, []string{"https://example.com/sorghum.jpg"}, inline.PriceData.Images)
}

func TestResolve_UnpurchasableProductIsUnresolved(t *testing.T) {
	outOfStock := purchasable("peppermint")
	outOfStock.InStock = false
	notForSale := purchasable("coffee")
	notForSale.AvailableForPurchase = false
	payments := newFakePayments()
	resolver := NewResolver(payments, &fakeProducts{products: []domain.Product{outOfStock, notForSale}})

	_, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{ProductID: "peppermint", PriceID: "price_p", Quantity: 1},
		{ProductID: "coffee", PriceID: "price_c", Quantity: 1},
	})

	assert.Equal(t, []string{"price_p", "price_c"}, unresolved)
}

func TestResolve_ListsOnlyFailingReferences(t *testing.T) {
	payments := newFakePayments()
	payments.prices["price_good"] = payment.Price{ID: "price_good", Active: true}
	resolver := NewResolver(payments, &fakeProducts{})

	_, unresolved := resolver.Resolve(context.Background(), []LineItemRequest{
		{PriceID: "price_good", Quantity: 1},
		{PriceID: "price_bad_1", Quantity: 1},
		{PriceID: "price_bad_2", Quantity: 1},
	})

	assert.Equal(t, []string{"price_bad_1", "price_bad_2"}, unresolved)
}

func TestUnitAmount(t *testing.T) {
	assert.Equal(t, int64(795), UnitAmount(7.95))
	assert.Equal(t, int64(0), UnitAmount(-1))
	assert.Equal(t, int64(1000), UnitAmount(9.999))
}
