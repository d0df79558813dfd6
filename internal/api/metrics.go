package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/strength"
)

// Metrics holds the service counters. Each Server owns its registry so
// several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evaluations *prometheus.CounterVec
	lookups     *prometheus.CounterVec
	rateLimited prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pwcheck_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pwcheck_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pwcheck_evaluations_total",
			Help: "Evaluated passwords by strength tier.",
		}, []string{"tier"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pwcheck_breach_lookups_total",
			Help: "Breach lookups by outcome (found, not_found, unverified).",
		}, []string{"outcome"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "pwcheck_rate_limit_exceeded_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	route := routeLabel(path)
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) observeTier(t strength.Tier) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) observeLookup(res breach.Result) {
	if m == nil {
		return
	}
	outcome := "not_found"
	switch {
	case res.Err != nil:
		outcome = "unverified"
	case res.Found:
		outcome = "found"
	}
	m.lookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

var knownRoutes = map[string]struct{}{
	"/api/v1/health":      {},
	"/api/v1/ready":       {},
	"/api/v1/evaluate":    {},
	"/api/v1/range-check": {},
	"/metrics":            {},
}

// routeLabel keeps label cardinality bounded for arbitrary request paths.
func routeLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}
