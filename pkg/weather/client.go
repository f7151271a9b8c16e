package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultAPIURL is the forecast endpoint.
const DefaultAPIURL = "https://api.apixu.com/v1/forecast.json"

// Client fetches current weather conditions.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a new weather client.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("weather: API key is required")
	}
	return &Client{
		apiKey:     apiKey,
		apiURL:     DefaultAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// SetAPIURL overrides the default API URL for testing purposes.
func (c *Client) SetAPIURL(u string) {
	c.apiURL = u
}

// Current returns the current conditions for the given location query.
func (c *Client) Current(ctx context.Context, location string) (Observation, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", location)
	endpoint := c.apiURL + "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Observation{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Observation{}, fmt.Errorf("weather: failed to call forecast API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return Observation{}, fmt.Errorf("weather: forecast API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Observation{}, fmt.Errorf("weather: failed to decode forecast response: %w", err)
	}

	return parsed.Current, nil
}
