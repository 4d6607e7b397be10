package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/featureflags"
	"github.com/tripweaver/tripweaver/internal/itinerary"
)

// Generator defines the interface for itinerary generation providers.
type Generator interface {
	// GenerateItinerary produces a full trip plan for the request.
	GenerateItinerary(ctx context.Context, req GenerationRequest) (*itinerary.Itinerary, error)

	// SuggestDestinations returns seasonal destination ideas.
	SuggestDestinations(ctx context.Context, season Season) (*DestinationSuggestions, error)

	// Name returns the provider name for logging.
	Name() string
}

// WeatherSummarizer produces a short weather blurb for a destination and
// month. Optional enrichment; generation proceeds without it.
type WeatherSummarizer interface {
	Summary(ctx context.Context, destination, month string) (string, error)
}

// ImageSource resolves a representative photo URL for a place. Optional;
// suggestions are served without images when lookup fails.
type ImageSource interface {
	SearchImage(ctx context.Context, query string) (string, error)
}

// ServiceConfig holds configuration for the planner service.
type ServiceConfig struct {
	// Generator is the itinerary generation provider (required).
	Generator Generator

	// Weather enriches generated itineraries with a weather summary
	// (optional).
	Weather WeatherSummarizer

	// Images resolves destination photos for suggestions (optional).
	Images ImageSource

	// Logger for service operations.
	Logger zerolog.Logger

	// FeatureFlags is the feature flag service (optional).
	// Used to degrade enrichment behavior at runtime.
	FeatureFlags *featureflags.Service

	// SuggestionsTTL is how long to cache destination suggestions per
	// season (default: 6 hours). Suggestions only change with the season.
	SuggestionsTTL time.Duration
}

// Service orchestrates itinerary generation and destination suggestions.
type Service struct {
	generator      Generator
	weather        WeatherSummarizer
	images         ImageSource
	logger         zerolog.Logger
	featureFlags   *featureflags.Service
	suggestionsTTL time.Duration

	mu          sync.RWMutex
	suggestions map[Season]*cachedSuggestions
}

type cachedSuggestions struct {
	suggestions *DestinationSuggestions
	expiresAt   time.Time
}

// NewService creates a new planner service.
func NewService(cfg ServiceConfig) *Service {
	ttl := cfg.SuggestionsTTL
	if ttl == 0 {
		ttl = 6 * time.Hour
	}

	return &Service{
		generator:      cfg.Generator,
		weather:        cfg.Weather,
		images:         cfg.Images,
		logger:         cfg.Logger,
		featureFlags:   cfg.FeatureFlags,
		suggestionsTTL: ttl,
		suggestions:    make(map[Season]*cachedSuggestions),
	}
}

// GenerateItinerary produces a trip plan for the request. The provider's
// payload carries no identity fields; destination and month are stamped from
// the request, each day's activities are ordered by start time, and the
// weather summary is filled in when a summarizer is configured.
func (s *Service) GenerateItinerary(ctx context.Context, req GenerationRequest) (*itinerary.Itinerary, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown travel type %q", ErrGenerationFailed, req.Type)
	}

	it, err := s.generator.GenerateItinerary(ctx, req)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("provider", s.generator.Name()).
			Str("location", req.Location).
			Msg("itinerary generation failed")
		return nil, err
	}

	it.Destination = req.Location
	it.Month = req.Month
	for i := range it.Days {
		it.Days[i].Activities = itinerary.SortActivities(it.Days[i].Activities)
	}

	if s.weather != nil && it.Info.Weather == "" && !s.weatherEnrichmentDisabled(ctx) {
		summary, err := s.weather.Summary(ctx, req.Location, req.Month)
		if err != nil {
			// Enrichment only; the itinerary is complete without it.
			s.logger.Warn().
				Err(err).
				Str("destination", req.Location).
				Msg("weather summary unavailable")
		} else {
			it.Info.Weather = summary
		}
	}

	return it, nil
}

// SuggestDestinations returns destination ideas for the season containing
// now, with photos resolved per destination. Results are cached per season.
func (s *Service) SuggestDestinations(ctx context.Context, now time.Time) (*DestinationSuggestions, error) {
	season := SeasonFor(now.Month())

	s.mu.RLock()
	if cached, ok := s.suggestions[season]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.suggestions, nil
	}
	s.mu.RUnlock()

	// Cached-only mode serves stale data over provider calls.
	if s.featureFlags != nil && s.featureFlags.IsCachedOnlySuggestions(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if cached, ok := s.suggestions[season]; ok {
			return cached.suggestions, nil
		}
		return &DestinationSuggestions{}, nil
	}

	suggestions, err := s.generator.SuggestDestinations(ctx, season)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("provider", s.generator.Name()).
			Str("season", string(season)).
			Msg("destination suggestions failed")
		return nil, err
	}

	s.resolveImages(ctx, suggestions)

	s.mu.Lock()
	s.suggestions[season] = &cachedSuggestions{
		suggestions: suggestions,
		expiresAt:   time.Now().Add(s.suggestionsTTL),
	}
	s.mu.Unlock()

	return suggestions, nil
}

// resolveImages fills in photo URLs for every suggestion concurrently.
// Failures leave the URL empty.
func (s *Service) resolveImages(ctx context.Context, suggestions *DestinationSuggestions) {
	if s.images == nil {
		return
	}
	if s.featureFlags != nil && s.featureFlags.IsDestinationImagesDisabled(ctx) {
		return
	}

	var wg sync.WaitGroup
	resolve := func(list []Destination) {
		for i := range list {
			wg.Add(1)
			go func(d *Destination) {
				defer wg.Done()

				url, err := s.images.SearchImage(ctx, d.Name)
				if err != nil {
					s.logger.Warn().
						Err(err).
						Str("destination", d.Name).
						Msg("destination image lookup failed")
					return
				}
				d.ImageURL = url
			}(&list[i])
		}
	}

	resolve(suggestions.Domestic)
	resolve(suggestions.Foreign)
	wg.Wait()
}

func (s *Service) weatherEnrichmentDisabled(ctx context.Context) bool {
	if s.featureFlags == nil {
		return false
	}
	return s.featureFlags.IsWeatherEnrichmentDisabled(ctx)
}
