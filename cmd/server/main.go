package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/phinehas2020/havis-candy/internal/cart"
	"github.com/phinehas2020/havis-candy/internal/catalog"
	"github.com/phinehas2020/havis-candy/internal/checkout"
	"github.com/phinehas2020/havis-candy/internal/content"
	storefront "github.com/phinehas2020/havis-candy/internal/http"
	"github.com/phinehas2020/havis-candy/internal/orders"
	"github.com/phinehas2020/havis-candy/internal/payment"
	"github.com/phinehas2020/havis-candy/internal/poller"
	"github.com/phinehas2020/havis-candy/internal/publisher"
)

func main() {
	// Configuration
	port := getEnv("PORT", "8080")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	mongoURI := getEnv("MONGO_URI", "")
	mongoDBName := getEnv("MONGO_DB_NAME", "storefront")
	stripeKey := getEnv("STRIPE_SECRET_KEY", "")
	webhookSecret := getEnv("CONTENT_WEBHOOK_SECRET", "")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	ordersDSN := getEnv("ORDERS_DB_DSN", "")
	siteURL := getEnv("SITE_URL", "")

	ctx := context.Background()

	// Cart storage. Redis is the one hard dependency; everything else
	// degrades to fallbacks or disabled routes.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Connected to Redis at %s", redisAddr)

	carts := cart.NewService(cart.NewRedisStore(redisClient))

	// Content store. Unconfigured means the static catalog serves
	// everything.
	var contentRepo content.Repository
	if mongoURI != "" {
		mongoDB, err := content.ConnectMongoDB(ctx, mongoURI, mongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoDB.Client().Disconnect(ctx)
		contentRepo = content.NewMongoRepository(mongoDB)
		log.Printf("Connected to MongoDB at %s", mongoURI)
	} else {
		log.Println("MONGO_URI not set, serving static catalog only")
	}
	contentService := content.NewService(contentRepo)

	// Payment processor.
	var payments payment.Client
	if stripeKey != "" {
		payments = payment.NewStripeClient(stripeKey)
	} else {
		log.Println("STRIPE_SECRET_KEY not set, checkout and catalog sync disabled")
	}

	// Order archive.
	var orderRepo *orders.Repository
	if ordersDSN != "" {
		var err error
		orderRepo, err = orders.NewRepository(ordersDSN)
		if err != nil {
			log.Fatalf("Failed to connect to orders database: %v", err)
		}
		defer orderRepo.Close()
		migrationsDir := getEnv("ORDERS_MIGRATIONS_DIR", "internal/orders/migrations")
		if err := orderRepo.RunMigrations(migrationsDir); err != nil {
			log.Fatalf("Failed to run order migrations: %v", err)
		}
		log.Println("Connected to orders database")
	}

	// Order events. When brokers are configured, confirmed checkouts go
	// through Kafka and the poller archives them; otherwise the archive
	// is written directly.
	var orderPublisher *publisher.Publisher
	var orderPoller *poller.Poller
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	if kafkaBrokers != "" {
		brokers := splitBrokers(kafkaBrokers)
		orderPublisher = publisher.NewPublisher(brokers...)
		defer orderPublisher.Close()
		if orderRepo != nil {
			orderPoller = poller.NewPoller(orderRepo, brokers...)
			defer orderPoller.Close()
			go orderPoller.Run(pollerCtx)
		}
		log.Printf("Publishing order events to %s", kafkaBrokers)
	}

	// Checkout and webhook handlers are always constructed: without a
	// payment credential they answer 500 (checkout) and 401 or 500
	// (webhook) themselves instead of the router serving 404.
	var checkoutService *checkout.Service
	var syncer *catalog.Syncer
	if payments != nil {
		resolver := checkout.NewResolver(payments, contentService)
		checkoutService = checkout.NewService(payments, resolver, carts,
			orderStoreOrNil(orderRepo), orderPublisherOrNil(orderPublisher))
		if contentRepo != nil {
			syncer = catalog.NewSyncer(payments, contentRepo)
		}
	}

	deps := storefront.RouterDeps{
		Content:  storefront.NewContentHandler(contentService),
		Cart:     storefront.NewCartHandler(carts),
		Checkout: storefront.NewCheckoutHandler(checkoutService, siteURL),
		Webhook:  storefront.NewWebhookHandler(syncer, webhookSecret),
	}

	handler := otelhttp.NewHandler(storefront.NewRouter(deps), "storefront")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: handler,
	}

	go func() {
		log.Printf("Storefront listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down storefront...")
	stopPoller()
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Storefront stopped")
}

// orderStoreOrNil avoids handing a typed nil pointer to the checkout
// service's interface field.
func orderStoreOrNil(repo *orders.Repository) checkout.OrderStore {
	if repo == nil {
		return nil
	}
	return repo
}

func orderPublisherOrNil(p *publisher.Publisher) checkout.OrderPublisher {
	if p == nil {
		return nil
	}
	return p
}

func splitBrokers(value string) []string {
	var brokers []string
	for _, broker := range strings.Split(value, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
