package unsplash_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/internal/places/unsplash"
	"github.com/tripweaver/tripweaver/internal/provider/resilience"
)

func TestClient_SearchImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "Jaipur", r.URL.Query().Get("query"))
		assert.Equal(t, "****", r.URL.Query().Get("client_id"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))

		response := map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"urls": map[string]string{
						"regular": "https://images.unsplash.com/photo-jaipur?w=1080",
						"small":   "https://images.unsplash.com/photo-jaipur?w=400",
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := unsplash.NewClient(unsplash.ClientConfig{
		AccessKey:  "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	url, err := client.SearchImage(context.Background(), "Jaipur")
	require.NoError(t, err)
	assert.Equal(t, "https://images.unsplash.com/photo-jaipur?w=1080", url)
}

func TestClient_SearchImage_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := unsplash.NewClient(unsplash.ClientConfig{
		AccessKey:  "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.SearchImage(context.Background(), "Xyzzyville")
	require.Error(t, err)
	assert.ErrorIs(t, err, unsplash.ErrNoImage)
}

func TestClient_SearchImage_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	// Use a client with minimal retries for faster tests
	cfg := resilience.DefaultClientConfig("test")
	cfg.MaxRetries = 0

	client := unsplash.NewClient(unsplash.ClientConfig{
		AccessKey:  "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(cfg),
	})

	_, err := client.SearchImage(context.Background(), "Jaipur")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_Name(t *testing.T) {
	client := unsplash.NewClient(unsplash.ClientConfig{AccessKey: "****"})
	assert.Equal(t, "unsplash", client.Name())
}
