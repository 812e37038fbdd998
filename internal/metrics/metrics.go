package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hackherth"

// Metrics holds the service and HTTP collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	useCaseTotal    *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	riskLevelTotal  *prometheus.CounterVec
	safetyTotal     *prometheus.CounterVec
	httpTotal       *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		useCaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "use_case_total",
				Help:      "Service use cases executed, by outcome.",
			},
			[]string{"use_case", "outcome"},
		),
		useCaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "use_case_duration_seconds",
				Help:      "Service use case latency.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"use_case"},
		),
		riskLevelTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_level_total",
				Help:      "Risk assessments produced, by level.",
			},
			[]string{"level"},
		),
		safetyTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "safety_level_total",
				Help:      "Safety verdicts produced, by level.",
			},
			[]string{"level"},
		),
		httpTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests handled by the API.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration observed at the API layer.",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		m.useCaseTotal,
		m.useCaseDuration,
		m.riskLevelTotal,
		m.safetyTotal,
		m.httpTotal,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	outcome := "success"
	if !event.Success {
		outcome = "error"
	}
	m.useCaseTotal.WithLabelValues(event.Name, outcome).Inc()
	m.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if level, ok := event.Fields[service.FieldRiskLevel].(string); ok && level != "" {
		m.riskLevelTotal.WithLabelValues(level).Inc()
	}
	if level, ok := event.Fields[service.FieldSafetyLevel].(string); ok && level != "" {
		m.safetyTotal.WithLabelValues(level).Inc()
	}
}

// ObserveHTTP records one handled request. route is the matched pattern,
// not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

var _ service.UseCaseObserver = (*Metrics)(nil)
