package orders

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestRepo(t *testing.T) *Repository {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx, testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	repo, err := NewRepository(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, thisFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(thisFile), "migrations")
	require.NoError(t, repo.RunMigrations(migrationsDir))

	return repo
}

func TestCreateAndGetOrder(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	order := Order{
		ID:          uuid.New(),
		SessionID:   "cs_test_123",
		CartID:      "cart-1",
		AmountTotal: 2385,
		Currency:    "usd",
		Status:      "paid",
		Items: []OrderItem{
			{Description: "Havi's Sorghum Caramels", PriceID: "price_s", Quantity: 2, AmountTotal: 1590},
			{Description: "Havi's Chai Caramels", PriceID: "price_c", Quantity: 1, AmountTotal: 795},
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateOrder(ctx, order))

	got, err := repo.GetOrderBySessionID(ctx, "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, int64(2385), got.AmountTotal)
	assert.Equal(t, "paid", got.Status)
	assert.Equal(t, order.Items, got.Items)
}

func TestCreateOrder_DuplicateSession(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	order := Order{SessionID: "cs_dup", AmountTotal: 100, Currency: "usd", Status: "paid"}
	require.NoError(t, repo.CreateOrder(ctx, order))

	err := repo.CreateOrder(ctx, order)
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetOrderBySessionID(context.Background(), "cs_ghost")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrders_NewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	older := Order{SessionID: "cs_old", AmountTotal: 100, Currency: "usd", Status: "paid", CreatedAt: time.Now().Add(-time.Hour)}
	newer := Order{SessionID: "cs_new", AmountTotal: 200, Currency: "usd", Status: "paid", CreatedAt: time.Now()}
	require.NoError(t, repo.CreateOrder(ctx, older))
	require.NoError(t, repo.CreateOrder(ctx, newer))

	list, err := repo.ListOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cs_new", list[0].SessionID)
}
