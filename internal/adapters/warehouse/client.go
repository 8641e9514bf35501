// Package warehouse implements the StockGateway port against the warehouse
// inventory system's JSON API.
package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/ports/gateways"
)

const defaultTimeout = 10 * time.Second

// Client talks to the warehouse stock API. Any non-success response is an
// upstream failure: callers roll back whatever they were doing.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a warehouse client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

var _ gateways.StockGateway = (*Client)(nil)

// CreateOrder registers a new order (reservation or buy order) with the
// warehouse.
func (c *Client) CreateOrder(ctx context.Context, order gateways.StockOrder) error {
	return c.post(ctx, "/api/v1/orders", order)
}

// ConfirmReservation converts a stock reservation into a definitive order.
func (c *Client) ConfirmReservation(ctx context.Context, reference string) error {
	return c.post(ctx, "/api/v1/orders/confirm", map[string]string{"reference": reference})
}

// CancelReservation releases the stock held for a pro-forma invoice.
func (c *Client) CancelReservation(ctx context.Context, reference string) error {
	return c.post(ctx, "/api/v1/orders/cancel", map[string]string{"reference": reference})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding warehouse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building warehouse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: warehouse unreachable: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: warehouse returned %d on %s: %s", apperrors.ErrUpstream, resp.StatusCode, path, detail)
	}
	return nil
}
