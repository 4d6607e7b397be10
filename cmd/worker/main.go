// Package main provides the entrypoint for the TripWeaver background worker.
// The worker consumes generation jobs from Pub/Sub, calls the planner, and
// saves the finished itinerary into the owner's collection.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/database"
	"github.com/tripweaver/tripweaver/internal/docstore"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/places/unsplash"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/planner/tripgen"
	"github.com/tripweaver/tripweaver/internal/user"
	"github.com/tripweaver/tripweaver/internal/weather"
	"github.com/tripweaver/tripweaver/internal/weather/openmeteo"
	"github.com/tripweaver/tripweaver/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tripweaver-worker"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TripWeaver worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	if projectID == "" {
		log.Fatal().Msg("PUBSUB_PROJECT_ID is required")
	}

	subscriptionName := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscriptionName == "" {
		subscriptionName = "generation-jobs-worker"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the relational database (user profiles)
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Connect to the document store (itineraries)
	docConfig := docstore.ConfigFromEnv()
	docs, err := docstore.Connect(ctx, docConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}

	userService := user.NewService(user.NewPostgresRepository(pool))
	itineraryService := itinerary.NewService(
		itinerary.NewMongoRepository(docs.Collection("itineraries")))

	// Initialize the planner with its providers
	tripgenBaseURL := os.Getenv("TRIPGEN_BASE_URL")
	if tripgenBaseURL == "" {
		log.Fatal().Msg("TRIPGEN_BASE_URL is required")
	}
	generator := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL: tripgenBaseURL,
		Logger:  log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: openmeteo.NewClient(openmeteo.ClientConfig{Logger: log}),
		Logger:   log,
	})

	var images planner.ImageSource
	if accessKey := os.Getenv("UNSPLASH_ACCESS_KEY"); accessKey != "" {
		images = unsplash.NewClient(unsplash.ClientConfig{
			AccessKey: accessKey,
			Logger:    log,
		})
	}

	plannerService := planner.NewService(planner.ServiceConfig{
		Generator: generator,
		Weather:   weatherService,
		Images:    images,
		Logger:    log,
	})

	processor := worker.NewGenerationProcessor(worker.GenerationProcessorConfig{
		Config:      worker.DefaultGenerationConfig(),
		Logger:      log,
		Planner:     plannerService,
		Itineraries: itineraryService,
		Users:       userService,
	})

	pubsubHandler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        projectID,
		SubscriptionName: subscriptionName,
		Processor:        processor,
		Logger:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pubsub handler")
	}
	defer pubsubHandler.Close()

	// Create HTTP server for health checks
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"version": Version,
			"metrics": processor.MetricsSnapshot(),
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("health server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Receive blocks until the context is cancelled
	go func() {
		if err := pubsubHandler.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("pubsub handler stopped")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
