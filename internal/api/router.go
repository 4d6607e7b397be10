// Package api provides the HTTP API for TripWeaver.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/api/handler"
	"github.com/tripweaver/tripweaver/internal/api/middleware"
	"github.com/tripweaver/tripweaver/internal/auth"
	"github.com/tripweaver/tripweaver/internal/featureflags"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/provider/resilience"
	"github.com/tripweaver/tripweaver/internal/user"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	AuthService        *auth.Service
	UserService        *user.Service
	ItineraryService   *itinerary.Service
	PlannerService     *planner.Service
	FeatureFlagService *featureflags.Service

	// ProviderRegistry tracks external provider health for the status
	// endpoint (optional).
	ProviderRegistry *resilience.Registry

	// Enqueuer hands generation jobs to the background worker. Nil disables
	// the async generation endpoint.
	Enqueuer handler.GenerationEnqueuer
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tripweaver-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ProviderRegistry)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.UserService, cfg.FeatureFlagService)
	meHandler := handler.NewMeHandler(cfg.UserService, cfg.AuthService)
	itineraryHandler := handler.NewItineraryHandler(cfg.ItineraryService, cfg.UserService, cfg.FeatureFlagService)
	planHandler := handler.NewPlanHandler(cfg.PlannerService, cfg.Enqueuer, cfg.FeatureFlagService)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuth := middleware.OptionalAuth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)           // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			// logout-all requires authentication
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user
			r.Get("/", meHandler.GetMe)
			r.Patch("/", meHandler.UpdateMe)

			// Saved itineraries
			r.Route("/itineraries", func(r chi.Router) {
				r.Get("/", itineraryHandler.List)
				r.Post("/", itineraryHandler.Save)
				r.Route("/{itineraryId}", func(r chi.Router) {
					r.Get("/", itineraryHandler.Get)
					r.Delete("/", itineraryHandler.Delete)
					r.Route("/days/{dayIndex}/activities", func(r chi.Router) {
						r.Post("/", itineraryHandler.AddActivity)
						r.Put("/{activityIndex}", itineraryHandler.EditActivity)
						r.Delete("/{activityIndex}", itineraryHandler.DeleteActivity)
					})
				})
			})
		})

		// Shared itinerary view (public, owner gets an editable view when
		// authenticated) - standard rate limiting
		r.With(standardRateLimit, optionalAuth).Get("/itineraries/{shareToken}", itineraryHandler.GetShared)

		// Planning endpoints (authenticated) - generation hits a paid
		// upstream, so strict rate limiting
		r.Route("/plan", func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(expensiveRateLimit).Post("/itinerary:generate", planHandler.Generate)
			r.With(expensiveRateLimit).Post("/itinerary:enqueue", planHandler.Enqueue)
			r.With(standardRateLimit).Get("/destinations", planHandler.Destinations)
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)

			// Feature flags management
			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})
		})
	})

	return r
}
