// Package domain contains the core business entities and interfaces for the
// storefront checkout service. This is the innermost layer - it has no
// dependencies on external frameworks or infrastructure.
package domain

import "time"

// LineItem is a single purchasable line of an order. It maps 1:1 into a
// provider item record with the deployment's operating currency.
type LineItem struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Quantity    int     `json:"quantity" binding:"required,gte=1"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
}

// ShippingAddress is the optional delivery address attached to an order.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OrderCheckoutRequest is the input to one checkout attempt. It is built by
// the caller at "pay now" time, immutable, and consumed once.
type OrderCheckoutRequest struct {
	OrderID              string           `json:"orderId" binding:"required"`
	Items                []LineItem       `json:"items" binding:"required,min=1,dive"`
	Total                float64          `json:"total"`
	Tax                  float64          `json:"tax"`
	Shipping             float64          `json:"shipping"`
	CustomerEmail        string           `json:"customerEmail"`
	CustomerName         string           `json:"customerName"`
	CustomerPhone        string           `json:"customerPhone"`
	CustomerDocument     string           `json:"customerDocument"`
	CustomerDocumentType string           `json:"customerDocumentType"`
	ShippingAddress      *ShippingAddress `json:"shippingAddress"`
}

// CheckoutSessionConfig is the normalized result of a successful preference
// creation, used by the client to navigate the user to the hosted checkout.
// This core never persists it.
type CheckoutSessionConfig struct {
	PreferenceID     string `json:"preferenceId"`
	InitPoint        string `json:"initPoint"`
	SandboxInitPoint string `json:"sandboxInitPoint"`
	TestMode         bool   `json:"testMode"`
	OrderID          string `json:"orderId"`
}

// EnvContext is the trust-sensitive environment for one checkout attempt,
// resolved from startup configuration - never from request-supplied data.
type EnvContext struct {
	BaseURL             string // trusted callback base, no trailing slash
	TestMode            bool
	StoreID             string
	StatementDescriptor string
	CurrencyID          string // operating currency, e.g. "ARS"
	PhoneAreaCode       string // country calling code, e.g. "54"
	DefaultCountry      string // shipment country fallback
}

// PaymentStatus represents the state of a payment after a provider
// notification has been processed.
type PaymentStatus struct {
	PaymentID       string    `json:"payment_id"`
	Status          string    `json:"status"`
	StatusDetail    string    `json:"status_detail"`
	ExternalRef     string    `json:"external_ref"` // our orderId
	Amount          float64   `json:"amount"`
	PayerEmail      string    `json:"payer_email"`
	TransactionDate time.Time `json:"transaction_date"`
}

// WebhookNotification represents an incoming IPN notification from the
// payment provider.
type WebhookNotification struct {
	ID          string `json:"id"`
	Type        string `json:"type"`   // "payment", "merchant_order", etc.
	Action      string `json:"action"` // "payment.created", "payment.updated", etc.
	DataID      string `json:"data_id"`
	LiveMode    bool   `json:"live_mode"`
	DateCreated string `json:"date_created"`
}
