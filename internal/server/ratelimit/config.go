package ratelimit

import (
	"strings"
	"time"
)

// Contact form limits: at most ContactLimit accepted submissions per
// identity within any trailing ContactWindow.
const (
	ContactLimit  = 3
	ContactWindow = time.Minute
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Trailing window
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(ContactLimit, ContactWindow),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations with
// the given contact form limit.
func DefaultEndpointConfigs(contactLimit int, contactWindow time.Duration) []EndpointConfig {
	return []EndpointConfig{
		// Lead capture (strictest)
		{Path: "/api/contact", Method: "POST", Limit: contactLimit, Window: contactWindow},
		{Path: "/api/cv-download", Method: "POST", Limit: 10, Window: time.Minute},

		// Telemetry forwarding
		{Path: "/api/logs", Method: "POST", Limit: 30, Window: time.Minute},

		// Pages and content reads use the default limit.
	}
}

// IPSet builds a whitelist or blacklist from individual entries.
func IPSet(ips []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
