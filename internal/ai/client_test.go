package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abinitio185/revrom/internal/models"
)

func sampleTour() models.Tour {
	return models.Tour{
		Title:       "Nubra Valley Explorer",
		Destination: "Ladakh, India",
		Route:       "Leh - Khardung La - Hunder",
		Duration:    7,
		Difficulty:  models.DifficultyAdvanced,
		ShortDesc:   "Seven days over the world's highest motorable passes.",
	}
}

func TestUnconfiguredClient_ReturnsFallbacksWithoutNetwork(t *testing.T) {
	// A dead base URL proves no request is attempted.
	c := NewClient("http://127.0.0.1:1", "")
	ctx := context.Background()

	img, err := c.GenerateBlogImage(ctx, "Monsoon riding", "")
	require.NoError(t, err)
	assert.Equal(t, FallbackBlogImage, img)

	list, err := c.GeneratePackingList(ctx, sampleTour())
	require.NoError(t, err)
	assert.Equal(t, FallbackPackingList, list)

	itin, err := c.GenerateCustomItinerary(ctx, "10 days, no camping", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackItinerary, itin)
}

func TestGeneratePackingList_Success(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["prompt"], "Nubra Valley Explorer")

		json.NewEncoder(w).Encode(map[string]string{"text": "Base layers\nHydration pack"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	got, err := c.GeneratePackingList(context.Background(), sampleTour())
	require.NoError(t, err)
	assert.Equal(t, "Base layers\nHydration pack", got)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestGenerateBlogImage_DataURLAndEmptyResult(t *testing.T) {
	empty := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if empty {
			json.NewEncoder(w).Encode(map[string]string{})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"image": "aGVsbG8=", "mime_type": "image/png"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	got, err := c.GenerateBlogImage(context.Background(), "Chai stops of Leh", "excerpt")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", got)

	// A configured service returning nothing degrades to the placeholder.
	empty = true
	got, err = c.GenerateBlogImage(context.Background(), "Chai stops of Leh", "excerpt")
	require.NoError(t, err)
	assert.Equal(t, FallbackBlogImage, got)
}

func TestFailures_SurfaceAsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	ctx := context.Background()

	_, err := c.GeneratePackingList(ctx, sampleTour())
	assert.Error(t, err)

	_, err = c.GenerateCustomItinerary(ctx, "anything", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
