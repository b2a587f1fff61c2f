// Package metrics holds the Prometheus collectors of the console.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for outbound API requests.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeQuery     = "query_error"
	OutcomeTransport = "transport_error"
)

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests  *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		apiRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "urladmin_api_requests_total",
			Help: "Outbound requests to the shortening backend by operation and outcome",
		}, []string{"operation", "outcome"}),
		apiDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "urladmin_api_request_duration_seconds",
			Help:    "Latency of outbound requests to the shortening backend",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"operation"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "urladmin_http_requests_total",
			Help: "Console HTTP requests by route and status",
		}, []string{"route", "status"}),
	}
}

// ObserveAPI records one outbound request. A nil receiver is a no-op.
func (m *Metrics) ObserveAPI(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(operation, outcome).Inc()
	m.apiDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveHTTP records one console request. A nil receiver is a no-op.
func (m *Metrics) ObserveHTTP(route, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, status).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
