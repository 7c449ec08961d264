// Package checkout implements the core business logic for the
// checkout-preference orchestration flow. This is the service/use-case
// layer: it validates the order, resolves the trust-sensitive environment,
// and drives the payment gateway.
package checkout

import (
	"context"
	"log/slog"

	"github.com/tiendaclara/storefront-checkout/config"
	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// Service orchestrates one checkout attempt per call. Each attempt runs the
// fixed sequence validate -> resolve environment -> build payload -> call
// provider; the first failure is terminal and nothing is retried, because
// preference creation is not known to be idempotent.
type Service struct {
	cfg      *config.Config
	gateway  domain.PaymentGateway
	notifier domain.StoreNotifier
	log      *slog.Logger
}

// NewService creates a new checkout service. notifier may be nil when no
// storefront backend is configured.
func NewService(cfg *config.Config, gateway domain.PaymentGateway, notifier domain.StoreNotifier, log *slog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		gateway:  gateway,
		notifier: notifier,
		log:      log,
	}
}

// CreateCheckout handles the checkout flow:
// 1. Validates the order data
// 2. Resolves credentials, test mode, and the trusted base URL
// 3. Creates a payment preference in Mercado Pago
// 4. Returns the session config for redirecting the user
func (s *Service) CreateCheckout(ctx context.Context, order domain.OrderCheckoutRequest) (*domain.CheckoutSessionConfig, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	// A missing credential must never route traffic to the provider.
	accessToken := s.cfg.MercadoPago.AccessToken
	if accessToken == "" {
		s.log.Error("checkout rejected: MP_ACCESS_TOKEN is not set", "order_id", order.OrderID)
		return nil, domain.NewCheckoutError(domain.ErrMissingCredentials,
			"payment provider is not configured",
			"CONFIG_ERROR")
	}

	env, err := s.resolveEnv()
	if err != nil {
		s.log.Error("checkout rejected: no public base URL in production", "order_id", order.OrderID)
		return nil, domain.NewCheckoutError(err,
			"payment callbacks are not configured",
			"CONFIG_ERROR")
	}

	session, err := s.gateway.CreatePreference(ctx, accessToken, order, env)
	if err != nil {
		s.log.Error("failed to create preference", "order_id", order.OrderID, "error", err)
		return nil, &domain.CheckoutError{
			Err:     domain.ErrPaymentGatewayError,
			Message: "failed to create payment preference",
			Code:    "GATEWAY_ERROR",
			Detail:  err.Error(),
		}
	}

	session.TestMode = env.TestMode
	session.OrderID = order.OrderID

	s.log.Info("created payment preference",
		"preference_id", session.PreferenceID,
		"order_id", order.OrderID,
		"test_mode", env.TestMode)

	return session, nil
}

// ProcessWebhook handles incoming payment notifications from the provider.
// It fetches the referenced payment and forwards its status to the
// storefront backend when one is configured.
func (s *Service) ProcessWebhook(ctx context.Context, notification domain.WebhookNotification) error {
	// Only payment notifications carry state we care about.
	if notification.Type != "payment" {
		s.log.Info("ignoring webhook", "type", notification.Type)
		return nil
	}

	status, err := s.gateway.GetPaymentInfo(ctx, s.cfg.MercadoPago.AccessToken, notification.DataID)
	if err != nil {
		return domain.NewCheckoutError(domain.ErrPaymentGatewayError,
			"failed to get payment info",
			"WEBHOOK_GATEWAY_ERROR")
	}

	s.log.Info("webhook processed",
		"payment_id", status.PaymentID,
		"order_id", status.ExternalRef,
		"status", status.Status)

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.NotifyPaymentStatus(ctx, status); err != nil {
		s.log.Error("failed to notify storefront backend", "payment_id", status.PaymentID, "error", err)
		return domain.NewCheckoutError(domain.ErrStoreAPIError,
			"failed to notify storefront backend",
			"WEBHOOK_NOTIFY_ERROR")
	}

	return nil
}

// resolveEnv builds the environment context for one checkout attempt from
// startup configuration.
func (s *Service) resolveEnv() (domain.EnvContext, error) {
	baseURL, err := ResolveBaseURL(s.cfg.App.PublicBaseURL, s.cfg.App.Environment)
	if err != nil {
		return domain.EnvContext{}, err
	}
	return domain.EnvContext{
		BaseURL:             baseURL,
		TestMode:            ResolveTestMode(s.cfg.App.Environment, s.cfg.App.ForceTestMode),
		StoreID:             s.cfg.App.StoreID,
		StatementDescriptor: s.cfg.App.StoreName,
		CurrencyID:          s.cfg.MercadoPago.CurrencyID,
		PhoneAreaCode:       s.cfg.MercadoPago.PhoneAreaCode,
		DefaultCountry:      s.cfg.MercadoPago.DefaultCountry,
	}, nil
}

// validateOrder performs basic validation on the order checkout request.
func validateOrder(order domain.OrderCheckoutRequest) error {
	if order.OrderID == "" {
		return domain.NewCheckoutError(domain.ErrInvalidOrder,
			"orderId is required",
			"VALIDATION_ERROR")
	}
	if len(order.Items) == 0 {
		return domain.NewCheckoutError(domain.ErrInvalidOrder,
			"items must not be empty",
			"VALIDATION_ERROR")
	}
	for _, item := range order.Items {
		if item.ID == "" || item.Name == "" {
			return domain.NewCheckoutError(domain.ErrInvalidOrder,
				"every item needs an id and a name",
				"VALIDATION_ERROR")
		}
		if item.Quantity < 1 {
			return domain.NewCheckoutError(domain.ErrInvalidOrder,
				"item quantity must be at least 1",
				"VALIDATION_ERROR")
		}
		if item.UnitPrice < 0 {
			return domain.NewCheckoutError(domain.ErrInvalidOrder,
				"item unitPrice must not be negative",
				"VALIDATION_ERROR")
		}
	}
	if order.CustomerEmail == "" {
		return domain.NewCheckoutError(domain.ErrInvalidOrder,
			"customerEmail is required",
			"VALIDATION_ERROR")
	}
	return nil
}
