// Package metrics exposes the Prometheus metrics of the signup API on a
// private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for user creation metrics.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
)

// unmatchedRoute labels requests that matched no route, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics holds the application collectors and the registry they live on.
type Metrics struct {
	registry *prometheus.Registry

	userCreations   *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	corsRejects     prometheus.Counter
}

// New creates a Metrics instance with its own registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		userCreations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_user_creations_total",
			Help: "Total number of user creation attempts by outcome and provider code",
		}, []string{"outcome", "code"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_http_requests_total",
			Help: "Total number of HTTP requests processed",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		corsRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signup_cors_rejects_total",
			Help: "Cross-origin requests rejected because the origin is not allowed",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.userCreations,
		m.requestsTotal,
		m.requestDuration,
		m.corsRejects,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordUserCreation counts a user creation attempt. code is the provider
// error code, or empty for successful and invalid requests.
func (m *Metrics) RecordUserCreation(outcome, code string) {
	m.userCreations.WithLabelValues(outcome, code).Inc()
}

// RecordCORSReject counts a request from a disallowed origin. The origin is
// client-controlled, so it is logged by the CORS middleware and never used
// as a label.
func (m *Metrics) RecordCORSReject() {
	m.corsRejects.Inc()
}

// Middleware records request counts and latency, labelled by the chi route
// pattern rather than the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
