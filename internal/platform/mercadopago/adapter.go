// Package mercadopago implements the PaymentGateway interface using the
// official Mercado Pago SDK.
package mercadopago

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// Adapter implements domain.PaymentGateway using the Mercado Pago SDK.
type Adapter struct {
	// No shared state - SDK clients are built per request from the access token.
}

// NewAdapter creates a new Mercado Pago adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// CreatePreference creates a Checkout Pro preference for the order and
// returns the partial session config. TestMode and OrderID are filled in
// by the service, which owns the environment resolution.
func (a *Adapter) CreatePreference(ctx context.Context, accessToken string, order domain.OrderCheckoutRequest, env domain.EnvContext) (*domain.CheckoutSessionConfig, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP config: %w", err)
	}

	client := preference.NewClient(cfg)

	result, err := client.Create(ctx, BuildPreferenceRequest(order, env))
	if err != nil {
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}

	return &domain.CheckoutSessionConfig{
		PreferenceID:     result.ID,
		InitPoint:        result.InitPoint,
		SandboxInitPoint: result.SandboxInitPoint,
	}, nil
}

// GetPaymentInfo retrieves payment details from Mercado Pago. Used when
// processing webhooks to get the current payment status.
func (a *Adapter) GetPaymentInfo(ctx context.Context, accessToken string, paymentID string) (*domain.PaymentStatus, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP config: %w", err)
	}

	client := payment.NewClient(cfg)

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment ID format: %w", err)
	}

	result, err := client.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment info: %w", err)
	}

	transactionDate := result.DateApproved
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	return &domain.PaymentStatus{
		PaymentID:       paymentID,
		Status:          result.Status,
		StatusDetail:    result.StatusDetail,
		ExternalRef:     result.ExternalReference,
		Amount:          result.TransactionAmount,
		PayerEmail:      result.Payer.Email,
		TransactionDate: transactionDate,
	}, nil
}
