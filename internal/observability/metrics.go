// Package observability exposes Prometheus metrics for the HTTP surface
// and the accounting core.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the application's Prometheus metrics on a private
// registry, keeping the default registry clean.
type Metrics struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	vouchersTotal     *prometheus.CounterVec
	reportsTotal      *prometheus.CounterVec
	movementsTotal    *prometheus.CounterVec
	integrityFailures prometheus.Counter
}

// NewMetrics initialises the registry and the base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contable_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contable_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	vouchersTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contable_vouchers_total",
		Help: "Voucher lifecycle transitions by action.",
	}, []string{"action"})
	reportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contable_reports_generated_total",
		Help: "Financial statements generated by kind.",
	}, []string{"kind"})
	movementsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contable_inventory_movements_total",
		Help: "Inventory movements posted by type.",
	}, []string{"type"})
	integrityFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contable_ledger_integrity_failures_total",
		Help: "Tenants found with unbalanced approved vouchers.",
	})
	registry.MustRegister(requests, duration, vouchersTotal, reportsTotal, movementsTotal, integrityFailures)
	return &Metrics{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:     requests,
		requestDuration:   duration,
		vouchersTotal:     vouchersTotal,
		reportsTotal:      reportsTotal,
		movementsTotal:    movementsTotal,
		integrityFailures: integrityFailures,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and duration per chi route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// VoucherAction counts create, approve, void and delete transitions.
func (m *Metrics) VoucherAction(action string) {
	if m == nil {
		return
	}
	m.vouchersTotal.WithLabelValues(action).Inc()
}

// ReportGenerated counts built statements.
func (m *Metrics) ReportGenerated(kind string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(kind).Inc()
}

// MovementPosted counts inventory movements.
func (m *Metrics) MovementPosted(movementType string) {
	if m == nil {
		return
	}
	m.movementsTotal.WithLabelValues(movementType).Inc()
}

// IntegrityFailure counts tenants whose approved ledger does not close.
func (m *Metrics) IntegrityFailure() {
	if m == nil {
		return
	}
	m.integrityFailures.Inc()
}

// Registerer exposes the registry for custom metric registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
