package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Route discriminators the assistant service is known to emit. Anything
// else is handled as a plain chat reply, never an error.
const (
	RouteTracker    = "tracker"
	RouteEmergency  = "emergency"
	RouteDiagnosis  = "diagnosis"
	RouteMythBuster = "myth_buster"
)

// ChatRequest is the outbound payload for one user turn. History carries the
// prior conversation as plain strings, prefixed with a profile-context line.
type ChatRequest struct {
	Message string   `json:"message"`
	UserID  string   `json:"user_id"`
	History []string `json:"history"`
	Gender  string   `json:"gender"`
	Image   string   `json:"image,omitempty"`
}

// Payload is the routed reply body. Data is kept raw because its shape
// depends on the route discriminator; the chat router decodes it per route
// and tolerates absent or extra fields.
type Payload struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ChatResponse is the assistant service's reply envelope.
type ChatResponse struct {
	Status      string   `json:"status"`
	RoutedTo    string   `json:"routed_to"`
	Response    Payload  `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// Client talks to the external assistant service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the assistant service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Chat sends one user turn and decodes the routed reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant returned status %s", resp.Status)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode assistant response: %w", err)
	}
	return &chatResp, nil
}

// Healthy reports whether the assistant service answers its root endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
