package payment

import (
	"context"
	"errors"
)

// ErrNotFound reports that a product or price does not exist on the
// processor side.
var ErrNotFound = errors.New("payment object not found")

type Product struct {
	ID          string
	Name        string
	Description string
	Active      bool
	Images      []string
	Metadata    map[string]string
}

type Price struct {
	ID         string
	ProductID  string
	Active     bool
	UnitAmount int64
	Currency   string
	OneTime    bool
}

type ProductInput struct {
	Name        string
	Description string
	Active      bool
	Images      []string
	Metadata    map[string]string
}

// PriceData is an inline, ephemeral price built at checkout time when no
// durable price exists for a product. Nothing is persisted processor-side.
type PriceData struct {
	Currency    string
	UnitAmount  int64
	Name        string
	Description string
	Images      []string
}

// LineItem references either a durable price (PriceID) or inline price
// data, never both.
type LineItem struct {
	PriceID   string
	Quantity  int64
	PriceData *PriceData
}

type SessionParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// SessionLineItem is one purchased line of a completed session.
type SessionLineItem struct {
	Description string
	PriceID     string
	Quantity    int64
	AmountTotal int64
}

type Session struct {
	ID          string
	URL         string
	Paid        bool
	AmountTotal int64
	Currency    string
	LineItems   []SessionLineItem
}

// Client is the payment processor surface the storefront needs.
// Implementations are constructed once per process and injected, so the
// resolver and the catalog sync handler stay testable with fakes.
type Client interface {
	GetPrice(ctx context.Context, priceID string) (*Price, error)
	ListActivePrices(ctx context.Context, productID string) ([]Price, error)
	SearchProductByContentID(ctx context.Context, contentID string) (*Product, error)

	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, input ProductInput) error
	ArchiveProduct(ctx context.Context, productID string) error

	CreatePrice(ctx context.Context, productID string, unitAmount int64) (*Price, error)
	ArchivePrice(ctx context.Context, priceID string) error

	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}
