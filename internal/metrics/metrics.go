// Package metrics exposes the Prometheus collectors of the directory API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the HTTP, directory and submission collectors.
type Metrics struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	companies   prometheus.Gauge
	loads       *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// New registers the collectors on the provided registerer. A nil registerer
// yields a no-op instance.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	companies := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "directory_companies",
		Help: "Companies held in the in-memory directory snapshot.",
	})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_loads_total",
		Help: "Directory snapshot loads by source and outcome.",
	}, []string{"source", "outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Public form submissions by kind and outcome.",
	}, []string{"kind", "outcome"})
	reg.MustRegister(requests, latency, companies, loads, submissions)
	return &Metrics{
		requests:    requests,
		latency:     latency,
		companies:   companies,
		loads:       loads,
		submissions: submissions,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetCompanies records the size of the current snapshot.
func (m *Metrics) SetCompanies(n int) {
	if m == nil || m.companies == nil {
		return
	}
	m.companies.Set(float64(n))
}

// IncDirectoryLoad counts a snapshot load attempt.
func (m *Metrics) IncDirectoryLoad(source, outcome string) {
	if m == nil || m.loads == nil {
		return
	}
	m.loads.WithLabelValues(normalizeLabel(source), normalizeLabel(outcome)).Inc()
}

// IncSubmission counts a form submission.
func (m *Metrics) IncSubmission(kind, outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
