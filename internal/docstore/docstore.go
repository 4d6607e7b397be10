// Package docstore provides MongoDB connection management for the itinerary
// document store.
package docstore

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds document store connection configuration.
type Config struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	maxPool, _ := strconv.ParseUint(getEnvOrDefault("MONGO_MAX_POOL_SIZE", "20"), 10, 64)
	timeout, _ := time.ParseDuration(getEnvOrDefault("MONGO_CONNECT_TIMEOUT", "10s"))

	return Config{
		URI:            getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		Database:       getEnvOrDefault("MONGO_DATABASE", "tripweaver"),
		MaxPoolSize:    maxPool,
		ConnectTimeout: timeout,
	}
}

// Connect creates a new document store client and verifies connectivity.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	return client.Database(cfg.Database), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
