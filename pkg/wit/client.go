package wit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultAPIURL is the Wit.ai API root.
	DefaultAPIURL = "https://api.wit.ai"

	// APIVersion pins the converse protocol version.
	APIVersion = "20160526"
)

// Client calls the Wit.ai converse endpoint.
type Client struct {
	accessToken string
	apiURL      string
	httpClient  *http.Client
}

var _ Converser = (*Client)(nil)

// NewClient creates a new Wit client with the given access token.
func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		apiURL:      DefaultAPIURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAPIURL overrides the default API URL for testing purposes.
func (c *Client) SetAPIURL(u string) {
	c.apiURL = u
}

// Converse requests the next planning step for a session.
func (c *Client) Converse(ctx context.Context, sessionID, message string, state map[string]interface{}) (ConverseResponse, error) {
	if state == nil {
		state = map[string]interface{}{}
	}
	body, err := json.Marshal(state)
	if err != nil {
		return ConverseResponse{}, fmt.Errorf("wit: failed to marshal context: %w", err)
	}

	query := url.Values{}
	query.Set("v", APIVersion)
	query.Set("session_id", sessionID)
	if message != "" {
		query.Set("q", message)
	}
	endpoint := c.apiURL + "/converse?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return ConverseResponse{}, fmt.Errorf("wit: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ConverseResponse{}, fmt.Errorf("wit: failed to call converse API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return ConverseResponse{}, fmt.Errorf("wit: converse API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var step ConverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&step); err != nil {
		return ConverseResponse{}, fmt.Errorf("wit: failed to decode converse response: %w", err)
	}

	return step, nil
}
