// Package checkout implements the core business logic for the
// checkout-preference orchestration flow.
package checkout

import (
	"strings"

	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// fallbackBaseURL is used for back URLs outside production when no public
// base URL is configured.
const fallbackBaseURL = "http://localhost:3000"

// ResolveTestMode determines whether the checkout runs against the provider
// sandbox. Test mode is the default-safe choice: production behavior
// requires the deployment to be explicitly marked production, and even then
// a forced override keeps the sandbox active.
func ResolveTestMode(environment string, forceTestMode bool) bool {
	if environment != "production" {
		return true
	}
	return forceTestMode
}

// ResolveBaseURL selects the trusted base for back URLs. Only the
// operator-configured base URL is ever used; request-supplied host
// information is rejected by construction to prevent redirect and
// host-header injection. In production a missing base URL is a
// configuration error rather than a silent fallback.
func ResolveBaseURL(publicBaseURL, environment string) (string, error) {
	if publicBaseURL != "" {
		return strings.TrimRight(publicBaseURL, "/"), nil
	}
	if environment == "production" {
		return "", domain.ErrMissingBaseURL
	}
	return fallbackBaseURL, nil
}
