package openmeteo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/internal/provider/resilience"
	"github.com/tripweaver/tripweaver/internal/weather"
	"github.com/tripweaver/tripweaver/internal/weather/openmeteo"
)

func TestClient_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kyoto", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))

		response := map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"name":      "Kyoto",
					"country":   "Japan",
					"latitude":  35.02107,
					"longitude": 135.75385,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		GeocodingURL: server.URL,
		HTTPClient:   resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	loc, err := client.Geocode(context.Background(), "Kyoto")
	require.NoError(t, err)
	require.NotNil(t, loc)

	assert.Equal(t, "Kyoto", loc.Name)
	assert.Equal(t, "Japan", loc.Country)
	assert.Equal(t, 35.02107, loc.Lat)
	assert.Equal(t, 135.75385, loc.Lon)
}

func TestClient_Geocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"generationtime_ms": 0.5}`))
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		GeocodingURL: server.URL,
		HTTPClient:   resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.Geocode(context.Background(), "Xyzzyville")
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrPlaceNotFound)
}

func TestClient_DailyMeans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("latitude"), "35.021")
		assert.Contains(t, r.URL.Query().Get("longitude"), "135.753")
		assert.Equal(t, "2026-08-25", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("end_date"))
		assert.Equal(t, "temperature_2m_mean", r.URL.Query().Get("daily"))

		response := map[string]interface{}{
			"daily": map[string]interface{}{
				"time":                []string{"2026-08-25", "2026-08-26", "2026-08-27"},
				"temperature_2m_mean": []float64{27.4, 28.1, 26.9},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		ForecastURL: server.URL,
		HTTPClient:  resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	start := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	series, err := client.DailyMeans(context.Background(), 35.02107, 135.75385, start, end)
	require.NoError(t, err)
	require.NotNil(t, series)

	require.Len(t, series.Means, 3)
	assert.Equal(t, 27.4, series.Means[0])
	require.Len(t, series.Dates, 3)
	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), series.Dates[1])

	avg, ok := series.Average()
	require.True(t, ok)
	assert.InDelta(t, 27.466, avg, 0.01)
}

func TestClient_DailyMeans_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	// Use a client with minimal retries for faster tests
	cfg := resilience.DefaultClientConfig("test")
	cfg.MaxRetries = 0

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		ForecastURL: server.URL,
		HTTPClient:  resilience.NewClient(cfg),
	})

	_, err := client.DailyMeans(context.Background(), 0, 0, time.Now().AddDate(0, 0, -7), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_Geocode_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		GeocodingURL: server.URL,
		HTTPClient:   resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Geocode(ctx, "Kyoto")
	require.Error(t, err)
}

func TestClient_Name(t *testing.T) {
	client := openmeteo.NewClient(openmeteo.ClientConfig{})
	assert.Equal(t, "openmeteo", client.Name())
}
