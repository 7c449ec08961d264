// Package client is the checkout façade used by the storefront's buy-button
// handlers. It validates order data, calls the checkout endpoint, tracks
// loading/error state, and performs the redirect to the provider's hosted
// checkout page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// ErrNoCheckoutURL is returned when the session config has no redirect URL
// for the selected mode. No navigation is performed in that case.
var ErrNoCheckoutURL = errors.New("checkout URL is missing for the selected mode")

// Navigator performs the full-page navigation to the hosted checkout.
// The storefront wires this to its HTTP redirect.
type Navigator interface {
	Navigate(url string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(url string) error

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(url string) error { return f(url) }

// Client orchestrates checkout attempts against the checkout endpoint.
// Loading and error state are observable via IsLoading and Err.
type Client struct {
	baseURL    string
	httpClient *http.Client
	navigator  Navigator

	mu      sync.Mutex
	loading bool
	err     error
}

// New creates a checkout client for the endpoint at baseURL.
func New(baseURL string, navigator Navigator) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		navigator: navigator,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsLoading reports whether a checkout call is in flight.
func (c *Client) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error recorded by the last operation, or nil.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// CreateCheckout validates the order locally, posts it to the checkout
// endpoint, and returns the session config. It makes exactly one network
// call and never retries. Loading state is cleared on every exit path.
func (c *Client) CreateCheckout(ctx context.Context, order domain.OrderCheckoutRequest) (*domain.CheckoutSessionConfig, error) {
	// Fail fast before any network call.
	if err := validateOrder(order); err != nil {
		c.setErr(err)
		return nil, err
	}

	c.setLoading(true)
	defer c.setLoading(false)
	c.setErr(nil)

	session, err := c.postCreatePreference(ctx, order)
	if err != nil {
		c.setErr(err)
		return nil, err
	}
	return session, nil
}

// RedirectToCheckout navigates to the hosted checkout page: the sandbox
// init point in test mode, the production init point otherwise. When the
// selected URL is absent it records an error and does not navigate.
func (c *Client) RedirectToCheckout(session *domain.CheckoutSessionConfig) error {
	url := session.InitPoint
	if session.TestMode {
		url = session.SandboxInitPoint
	}
	if url == "" {
		c.setErr(ErrNoCheckoutURL)
		return ErrNoCheckoutURL
	}
	return c.navigator.Navigate(url)
}

// CreateAndRedirect composes CreateCheckout and RedirectToCheckout. A
// failure from CreateCheckout propagates without attempting the redirect
// and stays visible via Err.
func (c *Client) CreateAndRedirect(ctx context.Context, order domain.OrderCheckoutRequest) (*domain.CheckoutSessionConfig, error) {
	session, err := c.CreateCheckout(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := c.RedirectToCheckout(session); err != nil {
		return session, err
	}
	return session, nil
}

func (c *Client) postCreatePreference(ctx context.Context, order domain.OrderCheckoutRequest) (*domain.CheckoutSessionConfig, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	url := c.baseURL + "/api/payment/create-preference"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(extractError(resp))
	}

	var session domain.CheckoutSessionConfig
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}
	return &session, nil
}

// extractError pulls a human-readable message out of an error response body.
func extractError(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("checkout endpoint returned status %d", resp.StatusCode)
}

// validateOrder checks the minimum the endpoint will demand, so obviously
// broken orders never leave the storefront.
func validateOrder(order domain.OrderCheckoutRequest) error {
	if order.OrderID == "" {
		return fmt.Errorf("%w: orderId is required", domain.ErrInvalidOrder)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", domain.ErrInvalidOrder)
	}
	if order.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is required", domain.ErrInvalidOrder)
	}
	return nil
}

func (c *Client) setLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
}

func (c *Client) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}
