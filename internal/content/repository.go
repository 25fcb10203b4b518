package content

import (
	"context"
	"errors"

	"github.com/phinehas2020/havis-candy/internal/domain"
)

var ErrNotFound = errors.New("document not found")

// ProductDocument is the content store's product record. Pointer fields
// distinguish absent from zero when reading documents that predate newer
// schema fields.
type ProductDocument struct {
	ID                   string   `bson:"_id"`
	Title                string   `bson:"title"`
	Slug                 string   `bson:"slug"`
	Price                float64  `bson:"price"`
	ShortDescription     string   `bson:"shortDescription"`
	LongDescription      string   `bson:"longDescription"`
	ImageURL             string   `bson:"imageUrl"`
	ImageRef             string   `bson:"imageRef,omitempty"`
	InStock              bool     `bson:"inStock"`
	AvailableForPurchase *bool    `bson:"availableForPurchase,omitempty"`
	Featured             bool     `bson:"featured"`
	Badge                string   `bson:"badge,omitempty"`
	StripeProductID      string   `bson:"stripeProductId,omitempty"`
	StripePriceID        string   `bson:"stripePriceId,omitempty"`
}

// StripeRefs is a partial patch of a product's Stripe references; empty
// fields are left untouched.
type StripeRefs struct {
	ProductID string
	PriceID   string
}

// Repository is the content store surface the storefront needs.
// Consumers define this interface, not the Mongo implementation.
type Repository interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Locations(ctx context.Context) ([]domain.StoreLocation, error)
	Testimonials(ctx context.Context) ([]domain.Testimonial, error)
	SiteSettings(ctx context.Context) (*domain.SiteSettings, error)
	AboutUs(ctx context.Context) (*domain.AboutUs, error)

	SetStripeRefs(ctx context.Context, docID string, refs StripeRefs) error
	UpsertProduct(ctx context.Context, doc ProductDocument) error
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
}
