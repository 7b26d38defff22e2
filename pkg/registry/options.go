package registry

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client for making requests.
// This is useful for testing, proxying, or custom transport configurations.
// The client's Timeout is left as provided; it overrides Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger used for submission events.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithEncoder sets a custom document encoder. Replace the default only with
// an encoder whose output is deterministic, otherwise the Base64 text used
// for signing and the transmitted text can diverge.
func WithEncoder(enc Encoder) Option {
	return func(c *Client) {
		c.encoder = enc
	}
}

// WithMetricsRegistry registers the client's Prometheus metrics with reg.
// Without this option no metrics are collected.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}
