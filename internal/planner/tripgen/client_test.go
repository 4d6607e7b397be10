package tripgen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/planner/tripgen"
	"github.com/tripweaver/tripweaver/internal/provider/resilience"
)

func TestClient_GenerateItinerary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generateItinerary", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Kyoto", body["location"])
		assert.Equal(t, "April", body["month"])
		assert.Equal(t, float64(3), body["days"])
		assert.Equal(t, float64(3), body["duration"])
		assert.Equal(t, "couple", body["type"])

		response := map[string]interface{}{
			"title": "3 Days in Kyoto",
			"info":  map[string]string{"weather": "Mild spring days around 18°C."},
			"itinerary": []map[string]interface{}{
				{
					"day":   1,
					"title": "Temples and Tea",
					"activities": []map[string]string{
						{"time": "9:00 AM - 11:00 AM", "location": "Kinkaku-ji", "description": "Golden Pavilion", "type": "sightseeing"},
						{"time": "12:30 PM - 2:00 PM", "location": "Nishiki Market", "description": "Street food lunch", "type": "dining"},
					},
				},
			},
			"accommodation": map[string]interface{}{
				"budget":    map[string]string{"name": "Guesthouse Kioto", "location": "Gion", "amenities": "Shared bath"},
				"mid_range": map[string]string{"name": "Hotel Kanra", "location": "Shimogyo", "amenities": "Onsen, breakfast"},
				"luxury":    map[string]string{"name": "The Ritz-Carlton", "location": "Kamogawa", "amenities": "River view, spa"},
			},
			"budget": map[string]string{
				"flights":        "$900",
				"accommodation":  "$450",
				"daily_expenses": "$100/day",
				"total_budget":   "$1,650",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	it, err := client.GenerateItinerary(context.Background(), planner.GenerationRequest{
		Location:   "Kyoto",
		Month:      "April",
		Days:       3,
		Activities: []string{"temples", "food"},
		Type:       planner.TravelCouple,
	})
	require.NoError(t, err)
	require.NotNil(t, it)

	assert.Equal(t, "3 Days in Kyoto", it.Title)
	assert.Equal(t, "Mild spring days around 18°C.", it.Info.Weather)
	require.Len(t, it.Days, 1)
	require.Len(t, it.Days[0].Activities, 2)
	assert.Equal(t, itinerary.TypeSightseeing, it.Days[0].Activities[0].Type)
	require.NotNil(t, it.Accommodation)
	assert.Equal(t, "Hotel Kanra", it.Accommodation.MidRange.Name)
	assert.Equal(t, "$1,650", it.Budget.TotalBudget)

	// Identity fields are never provider-supplied.
	assert.Empty(t, it.ID)
	assert.Empty(t, it.CreatedBy)
}

func TestClient_GenerateItinerary_UnknownActivityType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"title": "Trip",
			"itinerary": []map[string]interface{}{
				{
					"day": 1,
					"activities": []map[string]string{
						{"time": "9:00 AM - 10:00 AM", "location": "Somewhere", "type": "spelunking"},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	it, err := client.GenerateItinerary(context.Background(), planner.GenerationRequest{
		Location: "Anywhere",
		Month:    "May",
		Days:     1,
		Type:     planner.TravelSolo,
	})
	require.NoError(t, err)
	assert.Equal(t, itinerary.TypeOther, it.Days[0].Activities[0].Type)
}

func TestClient_GenerateItinerary_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	// Use a client with minimal retries for faster tests
	cfg := resilience.DefaultClientConfig("test")
	cfg.MaxRetries = 0

	client := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(cfg),
	})

	_, err := client.GenerateItinerary(context.Background(), planner.GenerationRequest{
		Location: "Kyoto",
		Month:    "April",
		Days:     3,
		Type:     planner.TravelSolo,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrGenerationFailed)
}

func TestClient_GenerateItinerary_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "Trip", "itinerary": [`))
	}))
	defer server.Close()

	client := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.GenerateItinerary(context.Background(), planner.GenerationRequest{
		Location: "Kyoto",
		Month:    "April",
		Days:     3,
		Type:     planner.TravelSolo,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrGenerationFailed)
}

func TestClient_SuggestDestinations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/destinations", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Winter", body["season"])

		response := map[string]interface{}{
			"domesticDestinations": []map[string]string{
				{"destination": "Jaipur", "reason": "Pleasant days for forts and markets."},
			},
			"foreignDestinations": []map[string]string{
				{"destination": "Prague", "reason": "Christmas markets and snow."},
				{"destination": "Queenstown", "reason": "Southern-hemisphere summer."},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	suggestions, err := client.SuggestDestinations(context.Background(), planner.SeasonWinter)
	require.NoError(t, err)
	require.NotNil(t, suggestions)

	require.Len(t, suggestions.Domestic, 1)
	assert.Equal(t, "Jaipur", suggestions.Domestic[0].Name)
	require.Len(t, suggestions.Foreign, 2)
	assert.Equal(t, "Prague", suggestions.Foreign[0].Name)
	assert.Empty(t, suggestions.Foreign[0].ImageURL)
}

func TestClient_GenerateItinerary_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := tripgen.NewClient(tripgen.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateItinerary(ctx, planner.GenerationRequest{
		Location: "Kyoto",
		Month:    "April",
		Days:     3,
		Type:     planner.TravelSolo,
	})
	require.Error(t, err)
}

func TestClient_Name(t *testing.T) {
	client := tripgen.NewClient(tripgen.ClientConfig{BaseURL: "http://localhost"})
	assert.Equal(t, "tripgen", client.Name())
}
