package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/phinehas2020/havis-candy/internal/checkout"
	"github.com/phinehas2020/havis-candy/internal/content"
	"github.com/phinehas2020/havis-candy/internal/domain"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

// Migrator seeds the content store from the static catalog: it uploads
// each product's image, optionally creates the matching payment
// processor product and price, and upserts the product document with
// the processor references attached. Intended as a one-shot tool for
// standing up a fresh environment.
type Migrator struct {
	repo     content.Repository
	payments payment.Client
	client   *http.Client
}

// NewMigrator builds a migrator. payments may be nil; the content store
// is then seeded without processor references and catalog sync fills
// them in later.
func NewMigrator(repo content.Repository, payments payment.Client) *Migrator {
	return &Migrator{
		repo:     repo,
		payments: payments,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Run migrates every product in the static catalog. It fails fast: a
// partial migration is repaired by re-running, since every step is an
// upsert or a create keyed by the document id.
func (m *Migrator) Run(ctx context.Context) error {
	for _, product := range content.FallbackProducts {
		if err := m.migrateProduct(ctx, product); err != nil {
			return fmt.Errorf("migrate product %s: %w", product.ID, err)
		}
	}
	return nil
}

func (m *Migrator) migrateProduct(ctx context.Context, product domain.Product) error {
	available := product.AvailableForPurchase
	source := &content.ProductDocument{
		ID:                   "product-" + product.ID,
		Title:                product.Title,
		Slug:                 product.Slug,
		Price:                product.Price,
		ShortDescription:     product.ShortDescription,
		LongDescription:      product.LongDescription,
		ImageURL:             product.ImageURL,
		InStock:              product.InStock,
		AvailableForPurchase: &available,
		Featured:             product.Featured,
		Badge:                product.Badge,
	}

	imageRef, err := m.uploadImage(ctx, source.ID, source.ImageURL)
	if err != nil {
		return err
	}
	source.ImageRef = imageRef

	if m.payments != nil {
		if err := m.linkProcessor(ctx, source); err != nil {
			return err
		}
	}

	if err := m.repo.UpsertProduct(ctx, *source); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	log.Printf("migrated %s (image %s, product %s, price %s)",
		source.ID, source.ImageRef, source.StripeProductID, source.StripePriceID)
	return nil
}

// uploadImage downloads the hosted image and stores it as a content
// store asset, returning the asset reference.
func (m *Migrator) uploadImage(ctx context.Context, docID, imageURL string) (string, error) {
	if imageURL == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read image body: %w", err)
	}

	return m.repo.UploadImage(ctx, imageFilename(docID, imageURL), data)
}

func imageFilename(docID, imageURL string) string {
	ext := path.Ext(imageURL)
	if i := strings.IndexAny(ext, "?~/"); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" {
		ext = ".jpg"
	}
	return docID + ext
}

// linkProcessor creates the payment processor product and a one-time
// price, then records both references on the document being upserted.
func (m *Migrator) linkProcessor(ctx context.Context, doc *content.ProductDocument) error {
	processorProduct, err := m.payments.CreateProduct(ctx, payment.ProductInput{
		Name:        doc.Title,
		Description: doc.ShortDescription,
		Active:      doc.InStock,
		Metadata: map[string]string{
			payment.MetadataContentID: doc.ID,
		},
	})
	if err != nil {
		return fmt.Errorf("create processor product: %w", err)
	}

	price, err := m.payments.CreatePrice(ctx, processorProduct.ID, checkout.UnitAmount(doc.Price))
	if err != nil {
		return fmt.Errorf("create processor price: %w", err)
	}

	doc.StripeProductID = processorProduct.ID
	doc.StripePriceID = price.ID
	return nil
}
