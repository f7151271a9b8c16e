package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultAPIURL is the Graph API messages endpoint.
const DefaultAPIURL = "https://graph.facebook.com/v2.6/me/messages"

// sendRatePerSec paces outbound sends under the Graph API send cap.
const sendRatePerSec = 20

// Client is the Messenger Send API client.
type Client struct {
	pageToken  string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Send API client with the given page access token.
func NewClient(pageToken string) *Client {
	return &Client{
		pageToken:  pageToken,
		apiURL:     DefaultAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(sendRatePerSec), sendRatePerSec),
	}
}

// SetAPIURL overrides the default Graph API URL for testing purposes.
func (c *Client) SetAPIURL(u string) {
	c.apiURL = u
}

// SendText sends a plain text message to the given recipient.
func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	return c.Send(ctx, SendRequest{
		Recipient: Principal{ID: recipientID},
		Message:   SendMessage{Text: text},
	})
}

// SendAttachment sends a structured template attachment to the recipient.
func (c *Client) SendAttachment(ctx context.Context, recipientID string, attachment Attachment) error {
	return c.Send(ctx, SendRequest{
		Recipient: Principal{ID: recipientID},
		Message:   SendMessage{Attachment: &attachment},
	})
}

// Send posts an arbitrary send request. A JSON-level error object from the
// Graph API is returned as *APIError; anything else is a transport error.
func (c *Client) Send(ctx context.Context, req SendRequest) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("messenger: rate wait: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("messenger: failed to marshal send request: %w", err)
	}

	endpoint := c.apiURL + "?access_token=" + url.QueryEscape(c.pageToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("messenger: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("messenger: failed to call send API: %w", err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("messenger: failed to decode send response: %w", err)
	}
	if apiResp.Error != nil {
		return apiResp.Error
	}

	return nil
}
