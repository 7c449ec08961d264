// Package mercadopago implements the PaymentGateway interface using the
// official Mercado Pago SDK.
package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// WebhookValidator validates Mercado Pago webhook signatures.
//
// The x-signature header contains: ts=<timestamp>,v1=<signature>
// The signature is HMAC-SHA256 of: id:<data.id>;request-id:<x-request-id>;ts:<timestamp>;
type WebhookValidator struct{}

// NewWebhookValidator creates a new webhook validator.
func NewWebhookValidator() *WebhookValidator {
	return &WebhookValidator{}
}

// ValidateSignature validates the x-signature header against the configured
// webhook secret using a constant-time comparison.
func (v *WebhookValidator) ValidateSignature(xSignature, xRequestID, dataID, secret string) bool {
	if xSignature == "" || secret == "" {
		return false
	}

	ts, hash := parseSignatureHeader(xSignature)
	if ts == "" || hash == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signatureManifest(dataID, xRequestID, ts)))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(hash), []byte(expected))
}

// parseSignatureHeader extracts the ts and v1 values from the comma-separated
// x-signature header.
func parseSignatureHeader(header string) (ts, hash string) {
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			hash = value
		}
	}
	return ts, hash
}

// signatureManifest builds the string Mercado Pago signs. Empty components
// are omitted along with their labels.
func signatureManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + dataID + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	if ts != "" {
		b.WriteString("ts:" + ts + ";")
	}
	return b.String()
}
