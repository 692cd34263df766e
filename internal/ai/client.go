// Package ai wraps the external generative completion service used for
// blog illustrations, packing lists, and custom itineraries. The service is
// a black box: one JSON request, one JSON response, no retries.
//
// Every method returns (value, error). With no API key configured the
// methods return a fixed fallback value and a nil error without touching the
// network; transport and HTTP failures are returned as errors and the caller
// decides between fallback text and showing the message with a retry button.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abinitio185/revrom/internal/models"
)

const defaultTimeout = 8 * time.Second

// Fallback values returned when no API key is configured.
const (
	FallbackBlogImage = "/static/img/blog-placeholder.jpg"

	FallbackPackingList = "Packing suggestions are not available right now. " +
		"Bring warm riding layers, a hydration pack, and your licence - and ask us on WhatsApp for the full list."

	FallbackItinerary = "Custom itinerary generation is not available right now. " +
		"Send us your preferences on WhatsApp and we'll draft a route for you within a day."
)

// ErrUnavailable wraps any transport or service failure. The message is
// suitable for direct display next to a retry affordance.
var ErrUnavailable = errors.New("the itinerary service is temporarily unavailable, please try again")

// Client talks to the completion service. The zero key means "not
// configured" and every call degrades to its fallback value.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client. An empty apiKey is allowed and logged once;
// all generation calls will then return their fallbacks.
func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if strings.TrimSpace(apiKey) == "" {
		slog.Warn("AI API key not configured; generation features will serve fallback content")
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type generateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type generateResponse struct {
	Text     string `json:"text,omitempty"`
	Image    string `json:"image,omitempty"` // base64 bytes
	MimeType string `json:"mime_type,omitempty"`
}

// GenerateBlogImage asks for an illustration for a blog post and returns an
// image reference (a data URL). On a missing key or an empty result it
// returns the fixed placeholder. On failure the caller should substitute its
// own placeholder; the distinction is logged only.
func (c *Client) GenerateBlogImage(ctx context.Context, title, excerpt string) (string, error) {
	if !c.Configured() {
		return FallbackBlogImage, nil
	}

	prompt := fmt.Sprintf(
		"A dramatic, photographic hero illustration for a motorcycle travel blog post titled %q. %s "+
			"High mountain roads, warm light, no text overlay.", title, excerpt)
	resp, err := c.generate(ctx, generateRequest{Prompt: prompt, AspectRatio: "16:9"})
	if err != nil {
		return "", err
	}
	if resp.Image == "" {
		return FallbackBlogImage, nil
	}
	mime := resp.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + resp.Image, nil
}

// GeneratePackingList asks for a packing list tailored to a tour.
func (c *Client) GeneratePackingList(ctx context.Context, tour models.Tour) (string, error) {
	if !c.Configured() {
		return FallbackPackingList, nil
	}

	prompt := fmt.Sprintf(
		"Write a practical packing list for a %d-day motorcycle tour: %q in %s (difficulty %s, route %s). "+
			"Group items under short headings. Plain text only.",
		tour.Duration, tour.Title, tour.Destination, tour.Difficulty, tour.Route)
	resp, err := c.generate(ctx, generateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateCustomItinerary drafts a route from free-text preferences, using
// a few existing tours as style context. Failures come back wrapped in
// ErrUnavailable so handlers can show the message verbatim with a retry.
func (c *Client) GenerateCustomItinerary(ctx context.Context, preferences string, examples []models.Tour) (string, error) {
	if !c.Configured() {
		return FallbackItinerary, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Draft a day-by-day motorcycle tour itinerary for a rider with these preferences: %s\n", preferences)
	if len(examples) > 0 {
		b.WriteString("Match the tone and level of detail of these existing tours:\n")
		for _, t := range examples {
			fmt.Fprintf(&b, "- %s: %d days, %s, %s\n", t.Title, t.Duration, t.Destination, t.ShortDesc)
		}
	}
	b.WriteString("Plain text, one heading per day.")

	resp, err := c.generate(ctx, generateRequest{Prompt: b.String()})
	if err != nil {
		slog.Error("custom itinerary generation failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.Text, nil
}

func (c *Client) generate(ctx context.Context, req generateRequest) (generateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return generateResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return generateResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return generateResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return generateResponse{}, fmt.Errorf("ai: generate status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return generateResponse{}, err
	}
	return out, nil
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
