package weather

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// Geocode resolves a place name to coordinates.
	Geocode(ctx context.Context, place string) (*Location, error)

	// DailyMeans fetches daily mean temperatures for a coordinate over an
	// inclusive date range.
	DailyMeans(ctx context.Context, lat, lon float64, start, end time.Time) (*TemperatureSeries, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Window is how many recent days feed the summary (default: 7).
	Window int

	// CacheTTL is how long to cache summaries per destination
	// (default: 1 hour). Recent daily means barely move within a day.
	CacheTTL time.Duration
}

// Service produces short weather summaries per destination, with caching.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	window   int
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedSummary
}

type cachedSummary struct {
	summary   string
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	window := cfg.Window
	if window == 0 {
		window = 7
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		window:   window,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedSummary),
	}
}

// Summary produces a one-line weather blurb for a destination, based on the
// mean observed temperature over the recent window. Historical normals for
// the travel month are not modelled; the blurb names the month so readers
// know the caveat.
func (s *Service) Summary(ctx context.Context, destination, month string) (string, error) {
	place := strings.ToLower(strings.TrimSpace(destination))
	if place == "" {
		return "", ErrPlaceNotFound
	}
	key := place + "|" + strings.ToLower(month)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.summary, nil
	}
	s.mu.RUnlock()

	loc, err := s.provider.Geocode(ctx, destination)
	if err != nil {
		return "", fmt.Errorf("geocoding %q: %w", destination, err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -s.window)

	series, err := s.provider.DailyMeans(ctx, loc.Lat, loc.Lon, start, end)
	if err != nil {
		return "", fmt.Errorf("fetching temperatures for %q: %w", destination, err)
	}

	avg, ok := series.Average()
	if !ok {
		return "", fmt.Errorf("no temperature data for %q", destination)
	}

	summary := fmt.Sprintf("%s around %.0f°C in %s lately.",
		describeTemperature(avg), avg, loc.Name)
	if month != "" {
		summary += fmt.Sprintf(" Conditions in %s may differ.", month)
	}

	s.mu.Lock()
	s.cache[key] = &cachedSummary{
		summary:   summary,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
	s.mu.Unlock()

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Str("destination", destination).
		Float64("avg_temp", math.Round(avg*10)/10).
		Msg("weather summary computed")

	return summary, nil
}

// describeTemperature buckets a Celsius mean into a display adjective.
func describeTemperature(c float64) string {
	switch {
	case c < 0:
		return "Freezing,"
	case c < 10:
		return "Cold,"
	case c < 18:
		return "Mild,"
	case c < 26:
		return "Warm,"
	default:
		return "Hot,"
	}
}
