// Package main provides the entrypoint for the TripWeaver API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/api"
	"github.com/tripweaver/tripweaver/internal/api/handler"
	"github.com/tripweaver/tripweaver/internal/api/middleware"
	"github.com/tripweaver/tripweaver/internal/auth"
	"github.com/tripweaver/tripweaver/internal/database"
	"github.com/tripweaver/tripweaver/internal/docstore"
	"github.com/tripweaver/tripweaver/internal/featureflags"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/places/unsplash"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/planner/tripgen"
	"github.com/tripweaver/tripweaver/internal/provider/resilience"
	"github.com/tripweaver/tripweaver/internal/telemetry"
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
	const serviceName = "tripweaver-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TripWeaver API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to the relational database (accounts, profiles, flags)
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Connect to the document store (itineraries)
	docConfig := docstore.ConfigFromEnv()
	docs, err := docstore.Connect(ctx, docConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}
	log.Info().
		Str("database", docConfig.Database).
		Msg("document store connected")

	// Initialize auth repositories and service
	authUserRepo := auth.NewPostgresUserRepository(pool)
	authRefreshRepo := auth.NewPostgresRefreshTokenRepository(pool)

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
	})

	authService := auth.NewService(auth.ServiceConfig{
		JWTService:  jwtService,
		UserRepo:    authUserRepo,
		RefreshRepo: authRefreshRepo,
	})
	log.Info().Msg("auth service initialized")

	// Initialize user repository and service
	userRepo := user.NewPostgresRepository(pool)
	userService := user.NewService(userRepo)
	log.Info().Msg("user service initialized")

	// Initialize feature flags repository and service
	ffRepo := featureflags.NewPostgresRepository(pool)
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: ffRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flags service initialized")

	// Initialize itinerary repository and service
	itineraryRepo := itinerary.NewMongoRepository(docs.Collection("itineraries"))
	itineraryService := itinerary.NewService(itineraryRepo)
	log.Info().Msg("itinerary service initialized")

	// Initialize the planner and its providers
	registry := resilience.NewRegistry()

	tripgenBaseURL := os.Getenv("TRIPGEN_BASE_URL")
	if tripgenBaseURL == "" {
		log.Warn().Msg("TRIPGEN_BASE_URL not set - generation endpoints will fail")
	}
	generator := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:  tripgenBaseURL,
		Registry: registry,
		Logger:   log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: openmeteo.NewClient(openmeteo.ClientConfig{Registry: registry, Logger: log}),
		Logger:   log,
	})

	var images planner.ImageSource
	if accessKey := os.Getenv("UNSPLASH_ACCESS_KEY"); accessKey != "" {
		images = unsplash.NewClient(unsplash.ClientConfig{
			AccessKey: accessKey,
			Registry:  registry,
			Logger:    log,
		})
	} else {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY not set - suggestions will have no images")
	}

	plannerService := planner.NewService(planner.ServiceConfig{
		Generator:    generator,
		Weather:      weatherService,
		Images:       images,
		Logger:       log,
		FeatureFlags: ffService,
	})
	log.Info().Msg("planner service initialized")

	// Initialize the async generation publisher (optional)
	var enqueuer handler.GenerationEnqueuer
	if projectID := os.Getenv("PUBSUB_PROJECT_ID"); projectID != "" {
		topicName := os.Getenv("PUBSUB_TOPIC")
		if topicName == "" {
			topicName = "generation-jobs"
		}
		publisher, pubErr := worker.NewPublisher(ctx, worker.PublisherConfig{
			ProjectID: projectID,
			TopicName: topicName,
			Logger:    log,
		})
		if pubErr != nil {
			log.Fatal().Err(pubErr).Msg("failed to create generation publisher")
		}
		defer publisher.Close()
		enqueuer = publisher
		log.Info().
			Str("topic", topicName).
			Msg("generation publisher initialized")
	} else {
		log.Warn().Msg("PUBSUB_PROJECT_ID not set - async generation disabled")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		AuthService:        authService,
		UserService:        userService,
		ItineraryService:   itineraryService,
		PlannerService:     plannerService,
		FeatureFlagService: ffService,
		ProviderRegistry:   registry,
		Enqueuer:           enqueuer,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
