// Package metrics exposes Prometheus instrumentation for the HTTP layer,
// snapshot reloads and scoring.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reload outcome labels
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// Metrics owns a private registry and the collectors registered on it.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	reloads          *prometheus.CounterVec
	snapshotProducts prometheus.Gauge
	snapshotSupplier prometheus.Gauge
	productsScored   prometheus.Counter
}

// New registers every collector under the given namespace
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "reloads_total",
			Help:      "Snapshot loads by outcome.",
		}, []string{"status"}),
		snapshotProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "products",
			Help:      "Products in the active snapshot.",
		}),
		snapshotSupplier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "suppliers",
			Help:      "Supplier rows in the active snapshot.",
		}),
		productsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "products_scored_total",
			Help:      "Products scored by the analysis engine.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.reloads,
		m.snapshotProducts,
		m.snapshotSupplier,
		m.productsScored,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveReload records a snapshot load and, on success, the new row counts
func (m *Metrics) ObserveReload(status string, products, suppliers int) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(status).Inc()
	if status == ReloadSuccess {
		m.snapshotProducts.Set(float64(products))
		m.snapshotSupplier.Set(float64(suppliers))
	}
}

// AddScored counts products run through the scoring engine
func (m *Metrics) AddScored(n int) {
	if m == nil {
		return
	}
	m.productsScored.Add(float64(n))
}
