package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phinehas2020/havis-candy/internal/checkout"
	"github.com/phinehas2020/havis-candy/internal/content"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

// Document is a content-store mutation payload. Pointer fields
// distinguish absent from zero: a delete notification is a tombstone
// carrying only identity and reference fields.
type Document struct {
	ID               string   `json:"_id"`
	Type             string   `json:"_type"`
	Title            *string  `json:"title"`
	Price            *float64 `json:"price"`
	ShortDescription *string  `json:"shortDescription"`
	ImageURL         string   `json:"imageUrl"`
	InStock          bool     `json:"inStock"`
	StripeProductID  string   `json:"stripeProductId"`
	StripePriceID    string   `json:"stripePriceId"`
}

// Event pairs the decoded document with the raw key set of the payload;
// classification needs to know which fields were present, not just
// their values.
type Event struct {
	Doc  Document
	keys map[string]struct{}
}

func ParseEvent(body []byte) (*Event, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	keys := make(map[string]struct{}, len(raw))
	for k := range raw {
		keys[k] = struct{}{}
	}
	return &Event{Doc: doc, keys: keys}, nil
}

// isDelete reports a tombstone: the content store sends a minimal
// payload without content fields when a document is deleted.
func (e *Event) isDelete() bool {
	return e.Doc.Title == nil && e.Doc.Price == nil && e.Doc.ShortDescription == nil
}

// isStripeFieldEcho reports the notification produced by this handler's
// own reference write-back. Writing stripeProductId/stripePriceId back
// to the content store fires another mutation notification whose only
// non-identity fields are those references; processing it would write
// the same references again, forever. This guard breaks the cycle and
// must run before every other classification, tombstones included: an
// echo payload also carries no content fields.
func (e *Event) isStripeFieldEcho() bool {
	hasRef := false
	for key := range e.keys {
		switch key {
		case "_id", "_type":
		case "stripeProductId", "stripePriceId":
			hasRef = true
		default:
			return false
		}
	}
	return hasRef
}

// Result describes the action taken for one event.
type Result struct {
	Action          string `json:"action,omitempty"`
	Skipped         string `json:"skipped,omitempty"`
	PriceChanged    bool   `json:"priceChanged,omitempty"`
	StripeProductID string `json:"stripeProductId,omitempty"`
	StripePriceID   string `json:"stripePriceId,omitempty"`
}

// RefWriter writes processor references back to the content store.
type RefWriter interface {
	SetStripeRefs(ctx context.Context, docID string, refs content.StripeRefs) error
}

// Syncer reconciles content-store product mutations into the payment
// processor's catalog. Create and update are idempotent with respect to
// an existing processor reference, so a failed run is repaired by the
// next notification for the same document.
type Syncer struct {
	payments payment.Client
	writer   RefWriter
}

func NewSyncer(payments payment.Client, writer RefWriter) *Syncer {
	return &Syncer{payments: payments, writer: writer}
}

func (s *Syncer) Sync(ctx context.Context, event *Event) (*Result, error) {
	doc := event.Doc

	if doc.Type != "product" {
		return &Result{Skipped: "non-product"}, nil
	}

	if event.isStripeFieldEcho() {
		return &Result{Skipped: "stripe-field-only-update"}, nil
	}

	if event.isDelete() {
		return s.archive(ctx, doc)
	}

	if doc.StripeProductID != "" {
		return s.update(ctx, doc)
	}
	return s.create(ctx, doc)
}

// archive deactivates the linked processor records. Nothing is ever
// hard-deleted on the processor side; past sessions keep referencing
// the archived objects.
func (s *Syncer) archive(ctx context.Context, doc Document) (*Result, error) {
	if doc.StripeProductID != "" {
		if err := s.payments.ArchiveProduct(ctx, doc.StripeProductID); err != nil {
			return nil, err
		}
	}
	if doc.StripePriceID != "" {
		if err := s.payments.ArchivePrice(ctx, doc.StripePriceID); err != nil {
			return nil, err
		}
	}
	return &Result{Action: "archived"}, nil
}

func (s *Syncer) update(ctx context.Context, doc Document) (*Result, error) {
	if err := s.payments.UpdateProduct(ctx, doc.StripeProductID, productInput(doc)); err != nil {
		return nil, err
	}

	if doc.StripePriceID == "" {
		return &Result{Action: "updated"}, nil
	}

	existing, err := s.payments.GetPrice(ctx, doc.StripePriceID)
	if err != nil {
		return nil, err
	}

	unitAmount := docUnitAmount(doc)
	if existing.UnitAmount == unitAmount {
		return &Result{Action: "updated"}, nil
	}

	// Prices are immutable once created: a price change is archive old,
	// create new, write the new reference back.
	if err := s.payments.ArchivePrice(ctx, doc.StripePriceID); err != nil {
		return nil, err
	}

	newPrice, err := s.payments.CreatePrice(ctx, doc.StripeProductID, unitAmount)
	if err != nil {
		return nil, err
	}

	if err := s.writer.SetStripeRefs(ctx, doc.ID, content.StripeRefs{PriceID: newPrice.ID}); err != nil {
		return nil, err
	}

	return &Result{
		Action:        "updated",
		PriceChanged:  true,
		StripePriceID: newPrice.ID,
	}, nil
}

func (s *Syncer) create(ctx context.Context, doc Document) (*Result, error) {
	product, err := s.payments.CreateProduct(ctx, productInput(doc))
	if err != nil {
		return nil, err
	}

	price, err := s.payments.CreatePrice(ctx, product.ID, docUnitAmount(doc))
	if err != nil {
		return nil, err
	}

	err = s.writer.SetStripeRefs(ctx, doc.ID, content.StripeRefs{
		ProductID: product.ID,
		PriceID:   price.ID,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Action:          "created",
		StripeProductID: product.ID,
		StripePriceID:   price.ID,
	}, nil
}

func productInput(doc Document) payment.ProductInput {
	input := payment.ProductInput{
		Name:   "Untitled Product",
		Active: doc.InStock,
		Metadata: map[string]string{
			payment.MetadataContentID: doc.ID,
		},
	}
	if doc.Title != nil {
		input.Name = *doc.Title
	}
	if doc.ShortDescription != nil {
		input.Description = *doc.ShortDescription
	}
	if doc.ImageURL != "" {
		input.Images = []string{doc.ImageURL}
	}
	return input
}

func docUnitAmount(doc Document) int64 {
	if doc.Price == nil {
		return 0
	}
	return checkout.UnitAmount(*doc.Price)
}
