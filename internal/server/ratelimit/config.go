package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	DefaultBurst  int
	// MaxClients bounds the number of tracked client buckets; the least recently used are dropped.
	MaxClients      int
	EndpointConfigs []EndpointConfig
}

// DefaultMaxClients is used when Config.MaxClients is not positive.
const DefaultMaxClients = 10_000

// NewConfig builds a config whose default bucket refills at perSecond with
// the given burst, plus the stricter limits for LLM-backed endpoints.
func NewConfig(perSecond float64, burst int) *Config {
	limit := int(perSecond * 60)
	if limit < 1 {
		limit = 1
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    limit,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		MaxClients:      DefaultMaxClients,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// LLM calls (strictest limits)
		{Path: "/api/alignment", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/chat/sessions/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Writes without LLM calls
		{Path: "/api/chat/sessions", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/alignment/export", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/contact", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/theme/toggle", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads use the default limit; health and metrics are unlimited
	}
}
