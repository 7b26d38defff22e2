// Package config provides configuration types and loading for markgate.
//
// Configuration is file-based (markgate.yaml) with environment variable
// overrides under the MARKGATE_ prefix. The bearer token is a secret and is
// normally supplied via MARKGATE_REGISTRY_TOKEN rather than the file.
package config

import (
	"time"
)

// Config is the top-level configuration for the markgate CLI.
type Config struct {
	// Registry configures the remote registry endpoint.
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`

	// RateLimit configures the client-side call quota.
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// MetricsAddr is an optional listen address (e.g. "127.0.0.1:9101") for
	// a Prometheus /metrics endpoint served while a batch submission runs.
	// Empty disables the listener.
	MetricsAddr string `yaml:"metrics_addr" mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
}

// RegistryConfig configures the registry endpoint and credentials.
type RegistryConfig struct {
	// BaseURL is the registry API base
	// (production: "https://ismp.crpt.ru/api/v3",
	// demo: "https://markirovka.demo.crpt.tech/api/v3").
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Token is the bearer token for the Authorization header.
	// Prefer the MARKGATE_REGISTRY_TOKEN environment variable over the file.
	Token string `yaml:"token" mapstructure:"token"`

	// ProductGroup is the default pg query parameter value
	// (e.g. "milk", "shoes"). Overridable per submission with --product-group.
	ProductGroup string `yaml:"product_group" mapstructure:"product_group"`

	// Timeout bounds each HTTP request (e.g. "30s").
	// Defaults to "30s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`
}

// RateLimitConfig configures the fixed-window call quota shared by all
// submissions of one run.
type RateLimitConfig struct {
	// Window is the fixed window length (e.g. "1s", "1m").
	// Defaults to "1s" if not specified.
	Window string `yaml:"window" mapstructure:"window" validate:"omitempty,duration"`

	// MaxRequests is the maximum number of submissions per window.
	// Defaults to 10 if not specified.
	MaxRequests int `yaml:"max_requests" mapstructure:"max_requests" validate:"omitempty,min=1"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	if c.Registry.BaseURL == "" {
		c.Registry.BaseURL = "https://markirovka.demo.crpt.tech/api/v3"
	}
	if c.Registry.Timeout == "" {
		c.Registry.Timeout = "30s"
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1s"
	}
	if c.RateLimit.MaxRequests == 0 {
		c.RateLimit.MaxRequests = 10
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ParsedTimeout returns the per-request timeout as a duration.
// Call only after Validate; the duration tag guarantees parseability.
func (c *RegistryConfig) ParsedTimeout() time.Duration {
	return mustParseDuration(c.Timeout)
}

// ParsedWindow returns the rate limit window as a duration.
// Call only after Validate; the duration tag guarantees parseability.
func (c *RateLimitConfig) ParsedWindow() time.Duration {
	return mustParseDuration(c.Window)
}

func mustParseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic("config: duration not validated: " + s)
	}
	return d
}
