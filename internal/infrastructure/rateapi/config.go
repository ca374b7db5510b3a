package rateapi

import (
	"errors"
	"regexp"
	"strings"
)

// Config holds configuration for the external rate API integration.
type Config struct {
	// BaseURL is the rate API base URL. The same logical carrier may be
	// fronted either by its own public REST API or by a private gateway
	// function; the URL shape decides auth headers and path prefix.
	BaseURL string
	// APIKey is the rate API key
	APIKey string
	// GatewayAnonKey is the anon key required by gateway-function hosting;
	// falls back to APIKey when unset
	GatewayAnonKey string
	// OriginCountry is the shipment origin country code
	OriginCountry string
	// DefaultCountry is the destination country fallback
	DefaultCountry string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Defaults for the rate API configuration.
const (
	DefaultOriginCountry  = "CN"
	DefaultDestCountry    = "ZW"
	DefaultTimeoutSeconds = 10
)

// Errors for rate API configuration
var (
	ErrConfigMissingBaseURL = errors.New("rateapi: base URL is required")
)

// gatewayHostPattern recognizes gateway-function hosting from the base URL
// alone. Resolution must stay pure and deterministic: the URL string is the
// only input.
var gatewayHostPattern = regexp.MustCompile(`(?i)\.functions\.supabase\.(co|net)|\.supabase\.(co|net)/functions/v1`)

// NewConfig creates a rate API configuration with defaults applied.
func NewConfig(baseURL, apiKey string) *Config {
	return &Config{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		OriginCountry:  DefaultOriginCountry,
		DefaultCountry: DefaultDestCountry,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.OriginCountry == "" {
		c.OriginCountry = DefaultOriginCountry
	}
	if c.DefaultCountry == "" {
		c.DefaultCountry = DefaultDestCountry
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return nil
}

// IsGateway reports whether the base URL points at a gateway-function host.
func (c *Config) IsGateway() bool {
	return gatewayHostPattern.MatchString(c.BaseURL)
}

// Endpoint resolves the full URL for a logical path ("calculate",
// "create-package", ...). Gateway hosts take the path directly; plain REST
// hosts take it under the api/ prefix.
func (c *Config) Endpoint(path string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if c.IsGateway() {
		return base + "/" + path
	}
	return base + "/api/" + path
}

// anonKey returns the key sent in the gateway apikey header.
func (c *Config) anonKey() string {
	if c.GatewayAnonKey != "" {
		return c.GatewayAnonKey
	}
	return c.APIKey
}
