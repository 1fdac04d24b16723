// Package metrics exposes prometheus instruments for the gateway: backend
// round-trip latency and submission outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	BackendCalls   *prometheus.CounterVec
	BackendLatency *prometheus.HistogramVec
	Submissions    *prometheus.CounterVec
}

func New() *Metrics {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesdesk",
		Name:      "backend_calls_total",
		Help:      "Total calls to the stock backend.",
	}, []string{"operation", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "salesdesk",
		Name:      "backend_call_duration_ms",
		Help:      "Stock backend call latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"operation"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesdesk",
		Name:      "submissions_total",
		Help:      "Sale submission attempts by outcome.",
	}, []string{"outcome"})

	prometheus.MustRegister(calls, latency, submissions)
	return &Metrics{
		BackendCalls:   calls,
		BackendLatency: latency,
		Submissions:    submissions,
	}
}

// ObserveCall implements the backend client's observer.
func (m *Metrics) ObserveCall(operation string, status int, elapsed time.Duration) {
	m.BackendCalls.WithLabelValues(operation, statusLabel(status)).Inc()
	m.BackendLatency.WithLabelValues(operation).Observe(float64(elapsed.Milliseconds()))
}

// RecordSubmission implements the checkout workflow's recorder.
func (m *Metrics) RecordSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

func statusLabel(status int) string {
	switch {
	case status == 0:
		return "error"
	case status >= 200 && status <= 299:
		return "2xx"
	case status >= 300 && status <= 399:
		return "3xx"
	case status >= 400 && status <= 499:
		return "4xx"
	default:
		return "5xx"
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
