package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tron_block_api"

// Attempt outcomes for node requests
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns a private registry so that several instances (tests, multiple
// servers) never collide on the default one. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	nodeAttempts *prometheus.CounterVec
	nodeRetries  prometheus.Counter
	nodeFailures prometheus.Counter
	nodeLatency  prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodeAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_request_attempts_total",
			Help:      "Outbound node request attempts by outcome.",
		}, []string{"outcome"}),
		nodeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_request_retries_total",
			Help:      "Outbound node request retries.",
		}),
		nodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_request_failures_total",
			Help:      "Outbound node requests that failed after exhausting retries.",
		}),
		nodeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "node_request_duration_seconds",
			Help:      "Latency of a single outbound node request attempt.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.nodeAttempts,
		m.nodeRetries,
		m.nodeFailures,
		m.nodeLatency,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// ObserveNodeAttempt records one outbound attempt
func (m *Metrics) ObserveNodeAttempt(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.nodeAttempts.WithLabelValues(outcome).Inc()
	m.nodeLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) IncNodeRetry() {
	if m == nil {
		return
	}
	m.nodeRetries.Inc()
}

func (m *Metrics) IncNodeFailure() {
	if m == nil {
		return
	}
	m.nodeFailures.Inc()
}

// ObserveHTTPRequest records one inbound request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
