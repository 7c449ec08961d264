// Package config handles loading and managing application configuration.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// It is resolved once at startup and injected; core logic never reads
// ambient process state.
type Config struct {
	// Server configuration
	Server ServerConfig

	// App-level environment settings
	App AppConfig

	// Mercado Pago configuration
	MercadoPago MercadoPagoConfig

	// Storefront backend API configuration
	StoreAPI StoreAPIConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// AppConfig holds deployment-environment settings governing mode and
// callback URL selection.
type AppConfig struct {
	Environment   string // "production" enables strict behavior
	ForceTestMode bool   // forces sandbox checkout even in production
	PublicBaseURL string // trusted base for back URLs; required in production
	StoreID       string
	StoreName     string // statement descriptor on card statements
}

// MercadoPagoConfig holds payment provider configuration.
type MercadoPagoConfig struct {
	AccessToken    string
	WebhookSecret  string
	CurrencyID     string
	PhoneAreaCode  string
	DefaultCountry string
}

// StoreAPIConfig holds the storefront backend API configuration.
// When BaseURL is empty the payment status notifier is disabled.
type StoreAPIConfig struct {
	BaseURL string
	APIKey  string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. Returns a Config struct with all settings populated.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		App: AppConfig{
			Environment:   getEnv("APP_ENV", "development"),
			ForceTestMode: getEnvBool("FORCE_TEST_MODE", false),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
			StoreID:       getEnv("STORE_ID", "storefront"),
			StoreName:     getEnv("STORE_NAME", "Tienda Clara"),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:    getEnv("MP_ACCESS_TOKEN", ""),
			WebhookSecret:  getEnv("MP_WEBHOOK_SECRET", ""),
			CurrencyID:     getEnv("CURRENCY_ID", "ARS"),
			PhoneAreaCode:  getEnv("PHONE_AREA_CODE", "54"),
			DefaultCountry: getEnv("DEFAULT_COUNTRY", "Argentina"),
		},
		StoreAPI: StoreAPIConfig{
			BaseURL: getEnv("STORE_API_URL", ""),
			APIKey:  getEnv("STORE_API_KEY", ""),
		},
	}
}

// IsProduction reports whether the deployment is explicitly marked production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean with a fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
