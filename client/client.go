// Package client is a typed Go consumer for the storefront API. It mirrors
// the endpoints the web storefront calls and is what the checkout and
// feedback widgets integrate against.
package client

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

// Feedback is a customer review as returned by the API.
type Feedback struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	ProductID string    `json:"productId"`
	OrderID   *string   `json:"orderId,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is a catalog entry as returned by the API.
type Product struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateFeedbackRequest is the body for submitting a review.
type CreateFeedbackRequest struct {
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UserInfo carries optional shipping details for checkout.
type UserInfo struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	City    string `json:"city,omitempty"`
}

// CheckoutRequest is the body for creating a checkout session.
type CheckoutRequest struct {
	ProductIDs []string `json:"productIds"`
	UserInfo   UserInfo `json:"userInfo"`
}

// CheckoutResult is the created order plus the gateway redirect url.
type CheckoutResult struct {
	OrderID     string `json:"orderId"`
	URL         string `json:"url"`
	TotalAmount int64  `json:"totalAmount"`
}

// APIError is a non-2xx response decoded from the API's {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls one store's public and authenticated endpoints. Token may be
// empty for public reads; mutations require it.
type Client struct {
	baseURL string
	storeID string
	token   string
	httpc   *http.Client
}

func New(baseURL, storeID, token string) *Client {
	return &Client{
		baseURL: baseURL,
		storeID: storeID,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateFeedback submits a review and returns the stored record.
func (c *Client) CreateFeedback(ctx context.Context, req CreateFeedbackRequest) (*Feedback, error) {
	var fb Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// ListFeedback returns all reviews for one product in insertion order.
func (c *Client) ListFeedback(ctx context.Context, productID string) ([]Feedback, error) {
	var out []Feedback
	if err := c.do(ctx, http.MethodGet, "/feedback?productId="+url.QueryEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteFeedback removes a review by id.
func (c *Client) DeleteFeedback(ctx context.Context, feedbackID string) error {
	return c.do(ctx, http.MethodDelete, "/feedback/"+feedbackID, nil, nil)
}

// Checkout creates an order for the given cart and returns the redirect url.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	var res CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/checkout", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListProducts returns the store's catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+c.storeID+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiResp struct {
			Error string `json:"error"`
		}
		msg := ""
		if b, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
			if json.Unmarshal(b, &apiResp) == nil {
				msg = apiResp.Error
			}
			if msg == "" {
				msg = string(b)
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
