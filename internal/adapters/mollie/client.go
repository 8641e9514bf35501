// Package mollie implements the PaymentGateway port against the Mollie
// payments API.
package mollie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	"github.com/warehousing/invoicing_backend/internal/core/ports/gateways"
)

const defaultTimeout = 10 * time.Second

// Client talks to the Mollie payments API.
type Client struct {
	baseURL     string
	apiKey      string
	redirectURL string
	webhookURL  string
	http        *http.Client
}

// New creates a Mollie client.
func New(baseURL, apiKey, redirectURL, webhookURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		redirectURL: redirectURL,
		webhookURL:  webhookURL,
		http:        &http.Client{Timeout: defaultTimeout},
	}
}

var _ gateways.PaymentGateway = (*Client)(nil)

type amountPayload struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type createPaymentPayload struct {
	Amount      amountPayload `json:"amount"`
	Description string        `json:"description"`
	RedirectURL string        `json:"redirectUrl"`
	WebhookURL  string        `json:"webhookUrl"`
	Metadata    struct {
		Reference string `json:"reference"`
	} `json:"metadata"`
}

type paymentResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  struct {
		Checkout struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

// CreatePayment registers a payment request with Mollie and returns the
// transaction to persist. Amounts are sent as EUR strings with two decimals.
func (c *Client) CreatePayment(ctx context.Context, invoice *domain.Invoice, amount decimal.Decimal, description string) (*domain.GatewayTransaction, error) {
	payload := createPaymentPayload{
		Amount:      amountPayload{Currency: "EUR", Value: amount.StringFixed(2)},
		Description: description,
		RedirectURL: c.redirectURL,
		WebhookURL:  c.webhookURL,
	}
	payload.Metadata.Reference = invoice.SequenceNumber

	var resource paymentResource
	if err := c.do(ctx, http.MethodPost, "/v2/payments", payload, &resource); err != nil {
		return nil, err
	}

	return &domain.GatewayTransaction{
		TransactionID: uuid.NewString(),
		ExternalID:    resource.ID,
		InvoiceID:     invoice.ID,
		Amount:        amount,
		Status:        domain.GatewayTransactionStatus(resource.Status),
		CheckoutURL:   resource.Links.Checkout.Href,
		DateCreated:   time.Now(),
	}, nil
}

// FetchStatus asks Mollie for the current status of a payment.
func (c *Client) FetchStatus(ctx context.Context, externalID string) (domain.GatewayTransactionStatus, error) {
	var resource paymentResource
	if err := c.do(ctx, http.MethodGet, "/v2/payments/"+externalID, nil, &resource); err != nil {
		return "", err
	}
	return domain.GatewayTransactionStatus(resource.Status), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding mollie request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building mollie request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: mollie unreachable: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: mollie returned %d on %s: %s", apperrors.ErrUpstream, resp.StatusCode, path, detail)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding mollie response: %w", err)
		}
	}
	return nil
}
