package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shellcon/aquacheck/internal/domain"
)

// Metrics holds the engine's Prometheus collectors on a private registry.
// It implements domain.VerificationRecorder.
type Metrics struct {
	registry      *prometheus.Registry
	verifications *prometheus.CounterVec
	duration      *prometheus.HistogramVec

	// ProbeClients counts HTTP clients built by the benchmark probe.
	ProbeClients prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aquacheck_verifications_total",
			Help: "Verifications performed, by category and outcome.",
		}, []string{"category", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aquacheck_verification_duration_seconds",
			Help:    "Wall time of one verification.",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"category"}),
		ProbeClients: f.NewCounter(prometheus.CounterOpts{
			Name: "aquacheck_probe_clients_created_total",
			Help: "HTTP clients constructed by the benchmark probe.",
		}),
	}
}

func (m *Metrics) RecordVerification(category domain.Category, outcome string, elapsed time.Duration) {
	m.verifications.WithLabelValues(string(category), outcome).Inc()
	m.duration.WithLabelValues(string(category)).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
