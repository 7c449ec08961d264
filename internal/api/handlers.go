// Package api contains the HTTP handlers and routing for the checkout service.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiendaclara/storefront-checkout/internal/checkout"
	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// Handler contains the HTTP handlers for the checkout API.
type Handler struct {
	service       *checkout.Service
	validator     domain.WebhookValidator
	webhookSecret string
	log           *slog.Logger
}

// NewHandler creates a new API handler with the checkout service.
// webhookSecret may be empty, in which case signature validation is skipped.
func NewHandler(service *checkout.Service, validator domain.WebhookValidator, webhookSecret string, log *slog.Logger) *Handler {
	return &Handler{
		service:       service,
		validator:     validator,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreatePreference handles POST /api/payment/create-preference.
// It validates the order, creates a Mercado Pago preference, and returns
// the checkout session config used to redirect the shopper.
func (h *Handler) CreatePreference(c *gin.Context) {
	var order domain.OrderCheckoutRequest
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
		return
	}

	session, err := h.service.CreateCheckout(c.Request.Context(), order)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// WebhookRequest represents the JSON body of Mercado Pago notifications.
type WebhookRequest struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
	LiveMode    bool   `json:"live_mode"`
	DateCreated string `json:"date_created"`
}

// HandleWebhook handles POST /api/payment/webhook.
// Receives payment notifications from Mercado Pago and processes them.
func (h *Handler) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Mercado Pago sends several notification formats; log and accept
		// so it does not retry malformed-but-harmless payloads.
		h.log.Warn("webhook parsing error", "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	if h.webhookSecret != "" {
		ok := h.validator.ValidateSignature(
			c.GetHeader("x-signature"),
			c.GetHeader("x-request-id"),
			req.Data.ID,
			h.webhookSecret,
		)
		if !ok {
			h.log.Warn("webhook signature validation failed", "notification_id", req.ID)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid webhook signature"})
			return
		}
	} else {
		h.log.Warn("MP_WEBHOOK_SECRET not set, skipping signature validation")
	}

	notification := domain.WebhookNotification{
		ID:          req.ID,
		Type:        req.Type,
		Action:      req.Action,
		DataID:      req.Data.ID,
		LiveMode:    req.LiveMode,
		DateCreated: req.DateCreated,
	}

	if err := h.service.ProcessWebhook(c.Request.Context(), notification); err != nil {
		h.log.Error("webhook processing error", "notification_id", req.ID, "error", err)
		// Still return 200 to prevent MP from retrying.
		c.JSON(http.StatusOK, gin.H{"status": "processed_with_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "storefront-checkout",
	})
}

// respondError maps domain errors to HTTP responses. Configuration failures
// stay generic here; their detail is already in the server logs. Gateway
// failures carry the provider detail, which never includes credentials.
func (h *Handler) respondError(c *gin.Context, err error) {
	var checkoutErr *domain.CheckoutError
	if errors.As(err, &checkoutErr) {
		switch {
		case errors.Is(checkoutErr.Err, domain.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: checkoutErr.Message})
		case errors.Is(checkoutErr.Err, domain.ErrMissingCredentials),
			errors.Is(checkoutErr.Err, domain.ErrMissingBaseURL):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "payment configuration error"})
		case errors.Is(checkoutErr.Err, domain.ErrPaymentGatewayError):
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   checkoutErr.Message,
				Details: checkoutErr.Detail,
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: checkoutErr.Message})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
