package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments recorded per submission.
type metrics struct {
	submissionsTotal   *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	rateLimitWait      prometheus.Histogram
	permitsAvailable   prometheus.Gauge
}

// newMetrics creates and registers all metrics with the given registry.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		submissionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "markgate",
				Name:      "submissions_total",
				Help:      "Total number of document submissions by outcome",
			},
			[]string{"outcome"}, // ok/rejected/transport_error/encoding_error/invalid_argument/cancelled
		),
		submissionDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "markgate",
				Name:      "submission_duration_seconds",
				Help:      "End-to-end submission duration including admission wait",
				Buckets:   prometheus.DefBuckets,
			},
		),
		rateLimitWait: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "markgate",
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for a rate limit permit",
				Buckets:   prometheus.DefBuckets,
			},
		),
		permitsAvailable: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "markgate",
				Name:      "rate_limit_permits_available",
				Help:      "Unconsumed permits remaining in the current window",
			},
		),
	}
}
