package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/homewise/affordability/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	calculations *prometheus.CounterVec
	rateFailures prometheus.Counter
}

// NewMetrics registers the HTTP and calculation collectors plus the Go
// runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homewise",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "homewise",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homewise",
			Name:      "affordability_calculations_total",
			Help:      "Completed affordability calculations by rating.",
		}, []string{"rating"}),
		rateFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "homewise",
			Name:      "rate_lookup_failures_total",
			Help:      "Interest rate lookups that failed.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.calculations, m.rateFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) observeCalculation(rating domain.AffordabilityRating) {
	m.calculations.WithLabelValues(string(rating)).Inc()
}

func (m *Metrics) observeRateFailure() {
	m.rateFailures.Inc()
}
