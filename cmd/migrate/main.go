package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/phinehas2020/havis-candy/internal/bootstrap"
	"github.com/phinehas2020/havis-candy/internal/content"
	"github.com/phinehas2020/havis-candy/internal/payment"
)

// Seeds the content store (and optionally the payment processor) from
// the static catalog. One-shot; safe to re-run.
func main() {
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDBName := getEnv("MONGO_DB_NAME", "storefront")
	stripeKey := getEnv("STRIPE_SECRET_KEY", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	mongoDB, err := content.ConnectMongoDB(ctx, mongoURI, mongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Printf("Connected to MongoDB at %s", mongoURI)

	var payments payment.Client
	if stripeKey != "" {
		payments = payment.NewStripeClient(stripeKey)
	} else {
		log.Println("STRIPE_SECRET_KEY not set, seeding without processor references")
	}

	migrator := bootstrap.NewMigrator(content.NewMongoRepository(mongoDB), payments)
	if err := migrator.Run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
