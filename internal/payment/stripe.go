package payment

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// MetadataContentID is the processor-side metadata key carrying the
// content-store document id. It is the reverse-lookup key when a stored
// price reference goes stale.
const MetadataContentID = "contentId"

const currencyUSD = string(stripe.CurrencyUSD)

// StripeClient implements Client against the Stripe API.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (s *StripeClient) GetPrice(ctx context.Context, priceID string) (*Price, error) {
	params := &stripe.PriceParams{Params: stripe.Params{Context: ctx}}
	p, err := s.api.Prices.Get(priceID, params)
	if err != nil {
		if isStripeNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieve price %s: %w", priceID, err)
	}
	return mapPrice(p), nil
}

func (s *StripeClient) ListActivePrices(ctx context.Context, productID string) ([]Price, error) {
	params := &stripe.PriceListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(10)},
		Product:    stripe.String(productID),
		Active:     stripe.Bool(true),
		Currency:   stripe.String(currencyUSD),
	}

	var prices []Price
	iter := s.api.Prices.List(params)
	for iter.Next() {
		prices = append(prices, *mapPrice(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list prices for %s: %w", productID, err)
	}
	return prices, nil
}

func (s *StripeClient) SearchProductByContentID(ctx context.Context, contentID string) (*Product, error) {
	params := &stripe.ProductSearchParams{
		SearchParams: stripe.SearchParams{
			Context: ctx,
			Query:   fmt.Sprintf("active:'true' AND metadata['%s']:'%s'", MetadataContentID, contentID),
			Limit:   stripe.Int64(1),
		},
	}

	iter := s.api.Products.Search(params)
	for iter.Next() {
		return mapProduct(iter.Product()), nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("search product by content id %s: %w", contentID, err)
	}
	return nil, ErrNotFound
}

func (s *StripeClient) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	params := &stripe.ProductParams{
		Params:      stripe.Params{Context: ctx},
		Name:        stripe.String(input.Name),
		Description: stripe.String(input.Description),
		Active:      stripe.Bool(input.Active),
	}
	if len(input.Images) > 0 {
		params.Images = stripe.StringSlice(input.Images)
	}
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}

	p, err := s.api.Products.New(params)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return mapProduct(p), nil
}

func (s *StripeClient) UpdateProduct(ctx context.Context, productID string, input ProductInput) error {
	params := &stripe.ProductParams{
		Params:      stripe.Params{Context: ctx},
		Name:        stripe.String(input.Name),
		Description: stripe.String(input.Description),
		Active:      stripe.Bool(input.Active),
	}
	if len(input.Images) > 0 {
		params.Images = stripe.StringSlice(input.Images)
	}
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}

	if _, err := s.api.Products.Update(productID, params); err != nil {
		return fmt.Errorf("update product %s: %w", productID, err)
	}
	return nil
}

func (s *StripeClient) ArchiveProduct(ctx context.Context, productID string) error {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Active: stripe.Bool(false),
	}
	if _, err := s.api.Products.Update(productID, params); err != nil {
		return fmt.Errorf("archive product %s: %w", productID, err)
	}
	return nil
}

func (s *StripeClient) CreatePrice(ctx context.Context, productID string, unitAmount int64) (*Price, error) {
	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(unitAmount),
		Currency:   stripe.String(currencyUSD),
	}

	p, err := s.api.Prices.New(params)
	if err != nil {
		return nil, fmt.Errorf("create price for %s: %w", productID, err)
	}
	return mapPrice(p), nil
}

// ArchivePrice deactivates a price. Stripe prices are immutable once
// created, so a price change is always archive-then-create.
func (s *StripeClient) ArchivePrice(ctx context.Context, priceID string) error {
	params := &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
		Active: stripe.Bool(false),
	}
	if _, err := s.api.Prices.Update(priceID, params); err != nil {
		return fmt.Errorf("archive price %s: %w", priceID, err)
	}
	return nil
}

func (s *StripeClient) CreateSession(ctx context.Context, sessionParams SessionParams) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(sessionParams.LineItems))
	for _, item := range sessionParams.LineItems {
		li := &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
		}
		if item.PriceData != nil {
			productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(item.PriceData.Name),
			}
			if item.PriceData.Description != "" {
				productData.Description = stripe.String(item.PriceData.Description)
			}
			if len(item.PriceData.Images) > 0 {
				productData.Images = stripe.StringSlice(item.PriceData.Images)
			}
			li.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(item.PriceData.Currency),
				UnitAmount:  stripe.Int64(item.PriceData.UnitAmount),
				ProductData: productData,
			}
		} else {
			li.Price = stripe.String(item.PriceID)
		}
		lineItems = append(lineItems, li)
	}

	params := &stripe.CheckoutSessionParams{
		Params:                   stripe.Params{Context: ctx},
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		AllowPromotionCodes:      stripe.Bool(true),
		LineItems:                lineItems,
		SuccessURL:               stripe.String(sessionParams.SuccessURL),
		CancelURL:                stripe.String(sessionParams.CancelURL),
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return mapSession(session), nil
}

func (s *StripeClient) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("line_items")
	session, err := s.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		if isStripeNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}
	return mapSession(session), nil
}

func mapPrice(p *stripe.Price) *Price {
	price := &Price{
		ID:         p.ID,
		Active:     p.Active,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
		OneTime:    p.Type == stripe.PriceTypeOneTime,
	}
	if p.Product != nil {
		price.ProductID = p.Product.ID
	}
	return price
}

func mapProduct(p *stripe.Product) *Product {
	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		Images:      p.Images,
		Metadata:    p.Metadata,
	}
}

func mapSession(s *stripe.CheckoutSession) *Session {
	session := &Session{
		ID:          s.ID,
		URL:         s.URL,
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal: s.AmountTotal,
		Currency:    string(s.Currency),
	}
	if s.LineItems != nil {
		for _, li := range s.LineItems.Data {
			item := SessionLineItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				AmountTotal: li.AmountTotal,
			}
			if li.Price != nil {
				item.PriceID = li.Price.ID
			}
			session.LineItems = append(session.LineItems, item)
		}
	}
	return session
}

func isStripeNotFound(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == 404 || stripeErr.Code == stripe.ErrorCodeResourceMissing
	}
	return false
}
