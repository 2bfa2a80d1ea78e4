package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors. Each server gets its own registry
// so tests can build as many servers as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	Analyses         *prometheus.CounterVec
	AnalysisFailures *prometheus.CounterVec
	ClassifierErrors *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	AnalysesActive   prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiscope_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		Analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiscope_analyses_total",
				Help: "Total number of successful analyses by sentiment",
			},
			[]string{"classifier", "sentiment"},
		),
		AnalysisFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiscope_analysis_failures_total",
				Help: "Total number of rejected or failed analyses",
			},
			[]string{"reason"},
		),
		ClassifierErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiscope_classifier_errors_total",
				Help: "Total number of classifier failures by provider error category",
			},
			[]string{"classifier", "reason"},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentiscope_analysis_duration_seconds",
				Help:    "Duration of classifier calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"classifier"},
		),
		AnalysesActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sentiscope_analyses_active",
				Help: "Number of classifier calls in flight",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
