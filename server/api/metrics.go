package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the proof service collectors on a private registry
type Metrics struct {
	registry       *prometheus.Registry
	proofs         *prometheus.CounterVec
	verifications  *prometheus.CounterVec
	proveDuration  *prometheus.HistogramVec
	verifyDuration *prometheus.HistogramVec
}

// proving a 44 character decode takes around a second, larger circuits longer
var proveBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// NewMetrics creates and registers the proof service collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		proofs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zkbase64",
			Name:      "proofs_total",
			Help:      "Number of proof requests by circuit and status",
		}, []string{"circuit", "status"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zkbase64",
			Name:      "verifications_total",
			Help:      "Number of verification requests by circuit and result",
		}, []string{"circuit", "result"}),
		proveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zkbase64",
			Name:      "prove_duration_seconds",
			Help:      "Proof generation time",
			Buckets:   proveBuckets,
		}, []string{"circuit"}),
		verifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zkbase64",
			Name:      "verify_duration_seconds",
			Help:      "Proof verification time",
			Buckets:   prometheus.DefBuckets,
		}, []string{"circuit"}),
	}

	m.registry.MustRegister(m.proofs, m.verifications, m.proveDuration, m.verifyDuration)
	return m
}

// ObserveProof records a proof request
func (m *Metrics) ObserveProof(circuit, status string, elapsed time.Duration) {
	m.proofs.WithLabelValues(circuit, status).Inc()
	if status == "ok" {
		m.proveDuration.WithLabelValues(circuit).Observe(elapsed.Seconds())
	}
}

// ObserveVerification records a verification request
func (m *Metrics) ObserveVerification(circuit string, valid bool, elapsed time.Duration) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.verifications.WithLabelValues(circuit, result).Inc()
	m.verifyDuration.WithLabelValues(circuit).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
