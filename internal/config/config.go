// Package config provides configuration management for the AI gateway
// service. Configuration is loaded once at startup from environment
// variables and config.yaml using Viper; the resulting Configuration
// is passed by handle into the gateway rather than held in a hidden
// process-wide singleton. Runtime toggling happens on the provider
// registry, not by mutating this struct.
package config

import (
	"fmt"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Gateway dispatch configuration
	Gateway GatewayConfig `json:"gateway" mapstructure:"gateway"`

	// Providers configuration
	Providers ProvidersConfig `json:"providers" mapstructure:"providers"`

	// Cache configuration
	Cache CacheConfig `json:"cache" mapstructure:"cache"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeoutSeconds is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// GatewayConfig holds dispatch behavior configuration.
type GatewayConfig struct {
	// AdapterTimeoutSeconds bounds a single adapter invocation.
	AdapterTimeoutSeconds int `json:"adapter_timeout_seconds" mapstructure:"adapter_timeout_seconds"`

	// ZeroCostMode disables every paid adapter at startup, leaving
	// only the free local adapter servable.
	ZeroCostMode bool `json:"zero_cost_mode" mapstructure:"zero_cost_mode"`

	// CacheableOperations overrides which operations consult the
	// result cache. Empty means the built-in defaults (only
	// recommendation generation is cached).
	CacheableOperations []string `json:"cacheable_operations" mapstructure:"cacheable_operations"`
}

// ProvidersConfig holds the per-provider settings. Priority numbers
// order the fallback chain ascending: the lowest number is tried
// first.
type ProvidersConfig struct {
	Custom LocalProviderConfig  `json:"custom" mapstructure:"custom"`
	Gemini RemoteProviderConfig `json:"gemini" mapstructure:"gemini"`
	OpenAI RemoteProviderConfig `json:"openai" mapstructure:"openai"`
}

// LocalProviderConfig configures the free local adapter.
type LocalProviderConfig struct {
	// Enabled indicates whether this provider is active.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// Priority orders the fallback chain (ascending).
	Priority int `json:"priority" mapstructure:"priority"`
}

// RemoteProviderConfig configures a paid external adapter.
type RemoteProviderConfig struct {
	// Enabled indicates whether this provider is active.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// Priority orders the fallback chain (ascending).
	Priority int `json:"priority" mapstructure:"priority"`

	// APIKey is the provider credential. Prefer the environment
	// variables over file configuration.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// Model overrides the adapter's default model.
	Model string `json:"model" mapstructure:"model"`

	// BaseURL overrides the provider endpoint (for compatible
	// servers and tests).
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	// Enabled turns the result cache on.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTLSeconds is the entry lifetime.
	TTLSeconds int `json:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// Validate validates the configuration and returns an error if
// required fields are missing or out of range.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.Gateway.AdapterTimeoutSeconds <= 0 {
		validationErrors = append(validationErrors, "gateway.adapter_timeout_seconds must be positive")
	}

	for _, name := range c.Gateway.CacheableOperations {
		if _, err := operation.ParseKind(name); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"gateway.cacheable_operations contains unknown operation '%s'", name))
		}
	}

	if c.Cache.Enabled && c.Cache.TTLSeconds <= 0 {
		validationErrors = append(validationErrors, "cache.ttl_seconds must be positive when cache is enabled")
	}

	for _, p := range []struct {
		name     string
		priority int
	}{
		{"custom", c.Providers.Custom.Priority},
		{"gemini", c.Providers.Gemini.Priority},
		{"openai", c.Providers.OpenAI.Priority},
	} {
		if p.priority < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"providers.%s.priority must not be negative", p.name))
		}
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// CacheableKinds returns the per-operation cacheability overrides as a
// map keyed by kind. When CacheableOperations is empty the map is
// empty and the gateway's built-in defaults apply; otherwise the list
// is exhaustive: listed kinds cache, everything else does not.
func (c *Configuration) CacheableKinds() map[operation.Kind]bool {
	kinds := make(map[operation.Kind]bool)
	if len(c.Gateway.CacheableOperations) == 0 {
		return kinds
	}

	for _, k := range operation.Kinds {
		kinds[k] = false
	}
	for _, name := range c.Gateway.CacheableOperations {
		if kind, err := operation.ParseKind(name); err == nil {
			kinds[kind] = true
		}
	}
	return kinds
}
