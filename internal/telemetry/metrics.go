package telemetry

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the benchmark collectors on a private registry, so several
// instances (tests, CLI and server in one process) never collide.
type Metrics struct {
	registry *prometheus.Registry

	SortDuration    *prometheus.HistogramVec
	CellsTotal      *prometheus.CounterVec
	RunsTotal       *prometheus.CounterVec
	TiersInProgress prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
}

// NewMetrics creates and registers all benchmark metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.SortDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sortbench_sort_duration_seconds",
			Help:    "Wall-clock time of a single completed sort",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 14),
		},
		[]string{"algorithm", "size"},
	)

	m.CellsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sortbench_cells_total",
			Help: "Benchmark cells by algorithm and terminal status",
		},
		[]string{"algorithm", "status"},
	)

	m.RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sortbench_runs_total",
			Help: "Benchmark invocations by outcome",
		},
		[]string{"outcome"},
	)

	m.TiersInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sortbench_tiers_in_progress",
			Help: "Size tiers currently being benchmarked",
		},
	)

	m.HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sortbench_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)

	m.registry.MustRegister(
		m.SortDuration,
		m.CellsTotal,
		m.RunsTotal,
		m.TiersInProgress,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCell records the outcome of one cell. ms is ignored unless measured.
func (m *Metrics) ObserveCell(algorithm, status string, size int, ms float64, measured bool) {
	m.CellsTotal.WithLabelValues(algorithm, status).Inc()
	if measured {
		m.SortDuration.WithLabelValues(algorithm, strconv.Itoa(size)).Observe(ms / 1000)
	}
}

// ObserveRun records a finished benchmark invocation.
func (m *Metrics) ObserveRun(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer starts a HTTP server exposing Prometheus metrics.
func StartMetricsServer(addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	LogInfo("Starting metrics server", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
