// Package mercadopago implements the PaymentGateway interface using the
// official Mercado Pago SDK.
package mercadopago

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/tiendaclara/storefront-checkout/internal/domain"
)

// providerTag identifies this provider in back URL query strings, so the
// storefront's result pages know which gateway the shopper returns from.
const providerTag = "mercadopago"

// BuildPreferenceRequest transforms an order and its environment context
// into a Checkout Pro preference request. It is pure: no I/O, deterministic
// given its inputs. Conditional payer and shipment sub-objects are either
// fully present or fully absent, never partially populated.
func BuildPreferenceRequest(order domain.OrderCheckoutRequest, env domain.EnvContext) preference.Request {
	items := make([]preference.ItemRequest, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, preference.ItemRequest{
			ID:          it.ID,
			Title:       it.Name,
			Description: it.Description,
			PictureURL:  it.ImageURL,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CurrencyID:  env.CurrencyID,
		})
	}

	req := preference.Request{
		Items:               items,
		Payer:               buildPayer(order, env),
		BackURLs:            buildBackURLs(order.OrderID, env.BaseURL),
		AutoReturn:          "approved",
		ExternalReference:   order.OrderID,
		NotificationURL:     env.BaseURL + "/api/payment/webhook",
		StatementDescriptor: env.StatementDescriptor,
		Metadata: map[string]any{
			"order_id":  order.OrderID,
			"store_id":  env.StoreID,
			"test_mode": strconv.FormatBool(env.TestMode),
		},
	}

	if addr := order.ShippingAddress; addr != nil {
		req.Shipments = &preference.ShipmentsRequest{
			ReceiverAddress: &preference.ReceiverAddressRequest{
				ZipCode:     addr.ZipCode,
				StreetName:  addr.Street,
				CityName:    addr.City,
				StateName:   addr.State,
				CountryName: countryOrDefault(addr.Country, env.DefaultCountry),
			},
		}
	}

	return req
}

// buildPayer assembles the payer block. Email is always set; the phone,
// identification, and address sub-objects are attached only when their
// source fields are present.
func buildPayer(order domain.OrderCheckoutRequest, env domain.EnvContext) *preference.PayerRequest {
	payer := &preference.PayerRequest{
		Email: order.CustomerEmail,
	}

	if order.CustomerName != "" {
		payer.Name, payer.Surname = splitName(order.CustomerName)
	}

	if order.CustomerPhone != "" {
		payer.Phone = &preference.PhoneRequest{
			AreaCode: env.PhoneAreaCode,
			Number:   digitsOnly(order.CustomerPhone),
		}
	}

	if order.CustomerDocument != "" && order.CustomerDocumentType != "" {
		payer.Identification = &preference.IdentificationRequest{
			Type:   strings.ToUpper(order.CustomerDocumentType),
			Number: order.CustomerDocument,
		}
	}

	if addr := order.ShippingAddress; addr != nil {
		payer.Address = &preference.AddressRequest{
			ZipCode:    addr.ZipCode,
			StreetName: addr.Street,
		}
	}

	return payer
}

// buildBackURLs builds the three redirect destinations from the trusted
// base URL. The pending URL carries an extra status marker so the result
// page can distinguish a still-processing payment from an approved one.
func buildBackURLs(orderID, baseURL string) *preference.BackURLsRequest {
	ref := url.QueryEscape(orderID)
	return &preference.BackURLsRequest{
		Success: fmt.Sprintf("%s/checkout/success?order_id=%s&source=%s", baseURL, ref, providerTag),
		Failure: fmt.Sprintf("%s/checkout/failure?order_id=%s&source=%s", baseURL, ref, providerTag),
		Pending: fmt.Sprintf("%s/checkout/pending?order_id=%s&source=%s&status=pending", baseURL, ref, providerTag),
	}
}

// splitName derives name and surname from a full name: the first token
// becomes the name, everything after the first space becomes the surname.
func splitName(full string) (name, surname string) {
	name, surname, _ = strings.Cut(strings.TrimSpace(full), " ")
	return name, surname
}

// digitsOnly strips every non-digit character from a phone number.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func countryOrDefault(country, fallback string) string {
	if country != "" {
		return country
	}
	return fallback
}
