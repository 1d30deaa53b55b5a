// Package metrics exposes the service's Prometheus collectors on a dedicated
// registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/run"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of dispatch_runs_total.
const (
	OutcomeRecorded = "recorded"
	OutcomeFailed   = "failed"
)

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	solveDuration prometheus.Histogram
	ordersServed  prometheus.Counter
	driversIdle   prometheus.Counter
	lastProfit    prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New builds the collectors and registers them, together with the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dispatch_runs_total", Help: "Matching runs by outcome."},
			[]string{"outcome"},
		),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_run_duration_seconds",
			Help:    "Time to load, solve and persist a matching run.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ordersServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_orders_assigned_total",
			Help: "Orders handed to a driver by a matching run.",
		}),
		driversIdle: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_drivers_declined_total",
			Help: "Drivers that took no order in a matching run.",
		}),
		lastProfit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_last_run_profit",
			Help: "Total profit of the most recent matching run.",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		m.runs,
		m.solveDuration,
		m.ordersServed,
		m.driversIdle,
		m.lastProfit,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RunRecorded counts a committed matching run.
func (m *Metrics) RunRecorded(r *run.Run, elapsed time.Duration) {
	m.runs.WithLabelValues(OutcomeRecorded).Inc()
	m.solveDuration.Observe(elapsed.Seconds())

	served := r.Served()
	m.ordersServed.Add(float64(served))
	m.driversIdle.Add(float64(len(r.Assignments()) - served))
	m.lastProfit.Set(r.TotalProfit())
}

// RunFailed counts a matching run that did not commit.
func (m *Metrics) RunFailed(error) {
	m.runs.WithLabelValues(OutcomeFailed).Inc()
}

// ObserveHTTP records one served request. path is the route template, not the
// raw URL, so ids do not explode the label space.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}
