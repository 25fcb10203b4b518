package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestDB(t *testing.T) Repository {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.RunContainer(ctx, testcontainers.WithImage("mongo:7"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	return NewMongoRepository(db)
}

func TestUpsertAndReadProducts(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	doc := ProductDocument{
		ID:               "product-sorghum",
		Title:            "Havi's Sorghum Caramels",
		Slug:             "havis-sorghum-caramels",
		Price:            7.95,
		ShortDescription: "The signature flavor.",
		InStock:          true,
	}
	require.NoError(t, repo.UpsertProduct(ctx, doc))

	products, err := repo.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "product-sorghum", products[0].ID)
	assert.True(t, products[0].AvailableForPurchase)
	assert.Empty(t, products[0].StripePriceID)
}

func TestUpsertProduct_Replaces(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	doc := ProductDocument{ID: "p1", Title: "First", Price: 5}
	require.NoError(t, repo.UpsertProduct(ctx, doc))

	doc.Title = "Second"
	doc.Price = 6
	require.NoError(t, repo.UpsertProduct(ctx, doc))

	products, err := repo.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Second", products[0].Title)
	assert.Equal(t, 6.0, products[0].Price)
}

func TestSetStripeRefs(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertProduct(ctx, ProductDocument{ID: "p1", Title: "Caramel", Price: 5}))

	err := repo.SetStripeRefs(ctx, "p1", StripeRefs{ProductID: "prod_123", PriceID: "price_456"})
	require.NoError(t, err)

	products, err := repo.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod_123", products[0].StripeProductID)
	assert.Equal(t, "price_456", products[0].StripePriceID)

	// Partial patch leaves the other ref untouched.
	require.NoError(t, repo.SetStripeRefs(ctx, "p1", StripeRefs{PriceID: "price_789"}))
	products, err = repo.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, "prod_123", products[0].StripeProductID)
	assert.Equal(t, "price_789", products[0].StripePriceID)
}

func TestSetStripeRefs_MissingDocument(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.SetStripeRefs(context.Background(), "ghost", StripeRefs{PriceID: "price_1"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteSettings_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.SiteSettings(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadImage(t *testing.T) {
	repo := setupTestDB(t)

	ref, err := repo.UploadImage(context.Background(), "product-sorghum.jpg", []byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
}
