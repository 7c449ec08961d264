// Package storeapi implements the StoreNotifier interface by communicating
// with the storefront backend, which owns order state and persistence.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// Client implements domain.StoreNotifier by making HTTP requests to the
// storefront backend API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new storefront backend client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// paymentStatusRequest is the JSON body posted to the backend when a
// payment status changes.
type paymentStatusRequest struct {
	PaymentID       string  `json:"payment_id"`
	OrderID         string  `json:"order_id"`
	Status          string  `json:"status"`
	StatusDetail    string  `json:"status_detail"`
	Amount          float64 `json:"amount"`
	PayerEmail      string  `json:"payer_email"`
	TransactionDate string  `json:"transaction_date"`
}

// NotifyPaymentStatus sends a payment status update to the storefront
// backend. The backend handles marking the order paid, sending emails, etc.
func (c *Client) NotifyPaymentStatus(ctx context.Context, status *domain.PaymentStatus) error {
	url := fmt.Sprintf("%s/api/internal/orders/payment-status", c.baseURL)

	payload := paymentStatusRequest{
		PaymentID:       status.PaymentID,
		OrderID:         status.ExternalRef,
		Status:          status.Status,
		StatusDetail:    status.StatusDetail,
		Amount:          status.Amount,
		PayerEmail:      status.PayerEmail,
		TransactionDate: status.TransactionDate.Format(time.RFC3339),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Internal-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storefront backend returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
