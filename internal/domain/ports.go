// Package domain contains the core business entities and interfaces for the
// storefront checkout service.
package domain

import "context"

// PaymentGateway defines the interface for interacting with the payment
// provider. This abstracts away the details of Mercado Pago SDK usage.
type PaymentGateway interface {
	// CreatePreference creates a Checkout Pro preference for the order.
	// Returns the session config with the init_point URLs for redirecting
	// the user to the hosted payment page.
	CreatePreference(ctx context.Context, accessToken string, order OrderCheckoutRequest, env EnvContext) (*CheckoutSessionConfig, error)

	// GetPaymentInfo retrieves payment information referenced by a webhook
	// notification.
	GetPaymentInfo(ctx context.Context, accessToken string, paymentID string) (*PaymentStatus, error)
}

// StoreNotifier defines the interface for forwarding payment events to the
// storefront backend, which owns order state and persistence.
type StoreNotifier interface {
	// NotifyPaymentStatus sends a payment status update for an order.
	NotifyPaymentStatus(ctx context.Context, status *PaymentStatus) error
}

// WebhookValidator validates provider webhook signatures.
type WebhookValidator interface {
	// ValidateSignature validates the x-signature header against the
	// configured webhook secret.
	ValidateSignature(xSignature, xRequestID, dataID, secret string) bool
}
