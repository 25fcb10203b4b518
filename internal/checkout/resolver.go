package checkout

import (
	"context"
	"math"

	"github.com/phinehas2020/havis-candy/internal/domain"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

const (
	MaxLineItems    = 50
	MaxQuantity     = 10
	defaultCurrency = "usd"
)

// LineItemRequest is one requested cart line. ProductID is optional; it
// enables recovery when the submitted price reference is stale.
type LineItemRequest struct {
	ProductID string `json:"productId,omitempty"`
	PriceID   string `json:"priceId"`
	Quantity  int64  `json:"quantity"`
}

// ProductSource supplies the canonical product list used to repair
// stale price references.
type ProductSource interface {
	Products(ctx context.Context) []domain.Product
}

// Resolver matches requested price references to chargeable line items.
// Resolution is all or nothing: a single unresolvable item rejects the
// whole batch, so a basket can never be charged partially against stale
// references.
type Resolver struct {
	payments payment.Client
	products ProductSource
}

func NewResolver(payments payment.Client, products ProductSource) *Resolver {
	return &Resolver{payments: payments, products: products}
}

// Resolve returns the resolved line items and the price references that
// failed every strategy. When the second return value is non-empty the
// first must be discarded.
func (r *Resolver) Resolve(ctx context.Context, items []LineItemRequest) ([]payment.LineItem, []string) {
	productsByID := r.requestedProducts(ctx, items)

	var resolved []payment.LineItem
	var unresolved []string

	for _, item := range items {
		if price := r.retrieveActivePrice(ctx, item.PriceID); price != nil {
			resolved = append(resolved, payment.LineItem{PriceID: price.ID, Quantity: item.Quantity})
			continue
		}

		product, ok := productsByID[item.ProductID]
		if !ok || !product.AvailableForPurchase || !product.InStock {
			unresolved = append(unresolved, item.PriceID)
			continue
		}

		if priceID := r.findActivePriceForProduct(ctx, product); priceID != "" {
			resolved = append(resolved, payment.LineItem{PriceID: priceID, Quantity: item.Quantity})
			continue
		}

		// Last resort: an inline price from the canonical product's
		// current data. Checkout still succeeds even when catalog sync
		// has never run for this product.
		resolved = append(resolved, payment.LineItem{
			Quantity:  item.Quantity,
			PriceData: inlinePriceData(product),
		})
	}

	return resolved, unresolved
}

func (r *Resolver) requestedProducts(ctx context.Context, items []LineItemRequest) map[string]domain.Product {
	wanted := make(map[string]bool)
	for _, item := range items {
		if item.ProductID != "" {
			wanted[item.ProductID] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	byID := make(map[string]domain.Product)
	for _, product := range r.products.Products(ctx) {
		if wanted[product.ID] {
			byID[product.ID] = product
		}
	}
	return byID
}

func (r *Resolver) retrieveActivePrice(ctx context.Context, priceID string) *payment.Price {
	if priceID == "" {
		return nil
	}
	price, err := r.payments.GetPrice(ctx, priceID)
	if err != nil || !price.Active {
		return nil
	}
	return price
}

// findActivePriceForProduct searches the processor for a usable durable
// price: the stored price ref first, then the active one-time prices of
// each candidate product reference (the stored product ref, then a
// processor-side search keyed by the content document id).
func (r *Resolver) findActivePriceForProduct(ctx context.Context, product domain.Product) string {
	if price := r.retrieveActivePrice(ctx, product.StripePriceID); price != nil {
		return price.ID
	}

	var candidates []string
	if product.StripeProductID != "" {
		candidates = append(candidates, product.StripeProductID)
	}
	if found, err := r.payments.SearchProductByContentID(ctx, product.ID); err == nil {
		candidates = append(candidates, found.ID)
	}

	for _, productID := range candidates {
		prices, err := r.payments.ListActivePrices(ctx, productID)
		if err != nil {
			continue
		}
		for _, price := range prices {
			if price.OneTime {
				return price.ID
			}
		}
	}

	return ""
}

func inlinePriceData(product domain.Product) *payment.PriceData {
	data := &payment.PriceData{
		Currency:    defaultCurrency,
		UnitAmount:  UnitAmount(product.Price),
		Name:        product.Title,
		Description: product.ShortDescription,
	}
	if len(product.ImageURL) > 4 && product.ImageURL[:4] == "http" {
		data.Images = []string{product.ImageURL}
	}
	return data
}

// UnitAmount converts a decimal price to minor currency units, clamped
// at zero.
func UnitAmount(price float64) int64 {
	amount := int64(math.Round(price * 100))
	if amount < 0 {
		return 0
	}
	return amount
}
