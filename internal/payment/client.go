package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the payment provider's checkout-session endpoint.
type Client struct {
	baseURL   string
	secretKey string
	httpc     *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpc:     &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSession creates a hosted checkout session and returns its redirect
// URL. The order id travels in params.Metadata as correlation for the
// provider's webhooks.
func (c *Client) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode session params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, b)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("gateway returned session without redirect url")
	}
	return &session, nil
}
