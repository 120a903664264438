// Package metrics exposes Prometheus metrics for the request pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RateLimitedTotal prometheus.Counter
	AuthFailures     prometheus.Counter
}

// New registers the gateway metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vital_gateway_requests_total",
			Help: "Total number of HTTP requests handled",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vital_gateway_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RateLimitedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vital_gateway_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vital_gateway_auth_failures_total",
			Help: "Total number of requests rejected by the auth guard",
		}),
	}
}
