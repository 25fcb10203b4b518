package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phinehas2020/havis-candy/internal/domain"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type mongoRepository struct {
	products     *mongo.Collection
	locations    *mongo.Collection
	testimonials *mongo.Collection
	settings     *mongo.Collection
	about        *mongo.Collection
	images       *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		products:     db.Collection("products"),
		locations:    db.Collection("locations"),
		testimonials: db.Collection("testimonials"),
		settings:     db.Collection("siteSettings"),
		about:        db.Collection("aboutUs"),
		images:       db.Collection("images"),
	}
}

func (m *mongoRepository) Products(ctx context.Context) ([]domain.Product, error) {
	cursor, err := m.products.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.ToDomain())
	}
	return products, nil
}

// ToDomain maps a stored document to the canonical product, applying the
// same defaults the storefront has always applied to sparse documents.
func (d ProductDocument) ToDomain() domain.Product {
	p := domain.Product{
		ID:                   d.ID,
		Title:                d.Title,
		Slug:                 d.Slug,
		Price:                d.Price,
		ShortDescription:     d.ShortDescription,
		LongDescription:      d.LongDescription,
		ImageURL:             d.ImageURL,
		InStock:              d.InStock,
		AvailableForPurchase: d.AvailableForPurchase == nil || *d.AvailableForPurchase,
		Featured:             d.Featured,
		Badge:                d.Badge,
		StripePriceID:        d.StripePriceID,
		StripeProductID:      d.StripeProductID,
	}
	if p.Title == "" {
		p.Title = "Untitled caramel"
	}
	if p.Slug == "" {
		p.Slug = d.ID
	}
	if p.ShortDescription == "" {
		p.ShortDescription = "Handmade hard caramel with all-natural ingredients."
	}
	return p
}

func (m *mongoRepository) Locations(ctx context.Context) ([]domain.StoreLocation, error) {
	cursor, err := m.locations.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID            string `bson:"_id"`
		Name          string `bson:"name"`
		StreetAddress string `bson:"streetAddress"`
		City          string `bson:"city"`
		Region        string `bson:"region"`
		PostalCode    string `bson:"postalCode"`
		MapURL        string `bson:"mapUrl"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}

	locations := make([]domain.StoreLocation, 0, len(docs))
	for _, doc := range docs {
		locations = append(locations, domain.StoreLocation{
			ID:            doc.ID,
			Name:          doc.Name,
			StreetAddress: doc.StreetAddress,
			City:          doc.City,
			Region:        doc.Region,
			PostalCode:    doc.PostalCode,
			MapURL:        doc.MapURL,
		})
	}
	return locations, nil
}

func (m *mongoRepository) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	cursor, err := m.testimonials.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID     string `bson:"_id"`
		Quote  string `bson:"quote"`
		Author string `bson:"author"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}

	testimonials := make([]domain.Testimonial, 0, len(docs))
	for _, doc := range docs {
		testimonials = append(testimonials, domain.Testimonial{ID: doc.ID, Quote: doc.Quote, Author: doc.Author})
	}
	return testimonials, nil
}

func (m *mongoRepository) SiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	var settings domain.SiteSettings
	err := m.settings.FindOne(ctx, bson.M{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	return &settings, nil
}

func (m *mongoRepository) AboutUs(ctx context.Context) (*domain.AboutUs, error) {
	var about domain.AboutUs
	err := m.about.FindOne(ctx, bson.M{}).Decode(&about)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get about us: %w", err)
	}
	return &about, nil
}

// SetStripeRefs patches only the provided Stripe references on a product
// document. The patch itself triggers a content-store mutation
// notification, which the catalog sync handler recognizes and skips.
func (m *mongoRepository) SetStripeRefs(ctx context.Context, docID string, refs StripeRefs) error {
	set := bson.M{}
	if refs.ProductID != "" {
		set["stripeProductId"] = refs.ProductID
	}
	if refs.PriceID != "" {
		set["stripePriceId"] = refs.PriceID
	}
	if len(set) == 0 {
		return nil
	}

	result, err := m.products.UpdateOne(ctx, bson.M{"_id": docID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set stripe refs: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoRepository) UpsertProduct(ctx context.Context, doc ProductDocument) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.products.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// UploadImage stores raw image bytes as a content-store asset and
// returns its reference.
func (m *mongoRepository) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	result, err := m.images.InsertOne(ctx, bson.M{
		"filename":   filename,
		"data":       primitive.Binary{Data: data},
		"uploadedAt": time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", result.InsertedID), nil
	}
	return id.Hex(), nil
}
