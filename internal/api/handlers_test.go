package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tiendaclara/storefront-checkout/config"
	"github.com/tiendaclara/storefront-checkout/internal/checkout"
	"github.com/tiendaclara/storefront-checkout/internal/domain"
	"github.com/tiendaclara/storefront-checkout/internal/platform/mercadopago"
)

type stubGateway struct {
	createCalls   int
	createSession *domain.CheckoutSessionConfig
	createErr     error
	infoStatus    *domain.PaymentStatus
	infoErr       error
}

func (s *stubGateway) CreatePreference(_ context.Context, _ string, _ domain.OrderCheckoutRequest, _ domain.EnvContext) (*domain.CheckoutSessionConfig, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	session := *s.createSession
	return &session, nil
}

func (s *stubGateway) GetPaymentInfo(_ context.Context, _ string, _ string) (*domain.PaymentStatus, error) {
	return s.infoStatus, s.infoErr
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		App: config.AppConfig{
			Environment: "development",
			StoreID:     "storefront",
			StoreName:   "Tienda Clara",
		},
		MercadoPago: config.MercadoPagoConfig{
			AccessToken:    "TEST-token",
			CurrencyID:     "ARS",
			PhoneAreaCode:  "54",
			DefaultCountry: "Argentina",
		},
	}
}

func newTestRouter(cfg *config.Config, gw *stubGateway, webhookSecret string) *gin.Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := checkout.NewService(cfg, gw, nil, log)
	handler := NewHandler(service, mercadopago.NewWebhookValidator(), webhookSecret, log)
	return SetupRouter(handler, gin.TestMode)
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validOrderBody() map[string]any {
	return map[string]any{
		"orderId": "O1",
		"items": []map[string]any{
			{"id": "p1", "name": "Tea", "quantity": 2, "unitPrice": 1000},
		},
		"total":         2000,
		"customerEmail": "a@b.com",
	}
}

func TestCreatePreference_Success(t *testing.T) {
	gw := &stubGateway{createSession: &domain.CheckoutSessionConfig{
		PreferenceID:     "pref-1",
		InitPoint:        "https://mp/init",
		SandboxInitPoint: "https://mp/sandbox",
	}}
	router := newTestRouter(testConfig(), gw, "")

	w := postJSON(t, router, "/api/payment/create-preference", validOrderBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["preferenceId"] != "pref-1" || resp["orderId"] != "O1" {
		t.Fatalf("unexpected response %v", resp)
	}
	if resp["testMode"] != true {
		t.Fatalf("testMode = %v, want true", resp["testMode"])
	}
	if resp["initPoint"] != "https://mp/init" || resp["sandboxInitPoint"] != "https://mp/sandbox" {
		t.Fatalf("unexpected init points %v", resp)
	}
}

func TestCreatePreference_MissingOrderID(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(testConfig(), gw, "")

	body := validOrderBody()
	delete(body, "orderId")
	w := postJSON(t, router, "/api/payment/create-preference", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if gw.createCalls != 0 {
		t.Fatalf("provider called %d times, want 0", gw.createCalls)
	}
}

func TestCreatePreference_EmptyItems(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(testConfig(), gw, "")

	body := validOrderBody()
	body["items"] = []map[string]any{}
	w := postJSON(t, router, "/api/payment/create-preference", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("expected error body, got %s", w.Body.String())
	}
	if gw.createCalls != 0 {
		t.Fatalf("provider called %d times, want 0", gw.createCalls)
	}
}

func TestCreatePreference_MissingToken(t *testing.T) {
	cfg := testConfig()
	cfg.MercadoPago.AccessToken = ""
	gw := &stubGateway{}
	router := newTestRouter(cfg, gw, "")

	w := postJSON(t, router, "/api/payment/create-preference", validOrderBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "payment configuration error" {
		t.Fatalf("error = %q, want generic configuration message", resp.Error)
	}
	if gw.createCalls != 0 {
		t.Fatalf("provider called %d times, want 0", gw.createCalls)
	}
}

func TestCreatePreference_ProductionWithoutBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.App.Environment = "production"
	gw := &stubGateway{}
	router := newTestRouter(cfg, gw, "")

	w := postJSON(t, router, "/api/payment/create-preference", validOrderBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if gw.createCalls != 0 {
		t.Fatalf("provider called %d times, want 0", gw.createCalls)
	}
}

func TestCreatePreference_GatewayError(t *testing.T) {
	gw := &stubGateway{createErr: errors.New("mp says no")}
	router := newTestRouter(testConfig(), gw, "")

	w := postJSON(t, router, "/api/payment/create-preference", validOrderBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] == "" || resp["error"] == nil {
		t.Fatalf("expected error message, got %v", resp)
	}
	if _, ok := resp["preferenceId"]; ok {
		t.Fatal("failure response must not carry a preferenceId")
	}
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(testConfig(), gw, "secret")

	w := postJSON(t, router, "/api/payment/webhook", map[string]any{
		"id":   "n1",
		"type": "payment",
		"data": map[string]any{"id": "123"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHandleWebhook_NoSecretProcesses(t *testing.T) {
	gw := &stubGateway{infoStatus: &domain.PaymentStatus{PaymentID: "123", Status: "approved"}}
	router := newTestRouter(testConfig(), gw, "")

	w := postJSON(t, router, "/api/payment/webhook", map[string]any{
		"id":   "n1",
		"type": "payment",
		"data": map[string]any{"id": "123"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(testConfig(), &stubGateway{}, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
