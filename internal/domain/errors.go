// Package domain contains the core business entities and interfaces for the
// storefront checkout service.
package domain

import "errors"

// Domain errors represent business rule violations.
// These are used to communicate specific error conditions from the domain layer.
var (
	// ErrInvalidOrder is returned when the order checkout data is invalid
	// (missing orderId, empty items, missing customer email).
	ErrInvalidOrder = errors.New("invalid order checkout data")

	// ErrMissingCredentials is returned when the payment provider access
	// token is not configured. A missing credential must never route
	// traffic to the provider.
	ErrMissingCredentials = errors.New("payment provider credentials not configured")

	// ErrMissingBaseURL is returned when no public base URL is configured
	// in a production deployment.
	ErrMissingBaseURL = errors.New("public base URL not configured")

	// ErrPaymentGatewayError is returned when the payment provider rejects
	// or fails the preference creation.
	ErrPaymentGatewayError = errors.New("payment gateway error")

	// ErrWebhookValidationFailed is returned when webhook signature validation fails.
	ErrWebhookValidationFailed = errors.New("webhook validation failed")

	// ErrStoreAPIError is returned when the storefront backend cannot be notified.
	ErrStoreAPIError = errors.New("error communicating with storefront backend")
)

// CheckoutError wraps a domain error with a human-readable message and a
// machine code. Detail carries provider diagnostics safe to return to the
// client; it never contains credential values.
type CheckoutError struct {
	Err     error
	Message string
	Code    string
	Detail  string
}

// Error implements the error interface.
func (e *CheckoutError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work with CheckoutError.
func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// NewCheckoutError creates a new CheckoutError with the given error and message.
func NewCheckoutError(err error, message, code string) *CheckoutError {
	return &CheckoutError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
