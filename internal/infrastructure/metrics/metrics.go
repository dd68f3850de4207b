package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
)

const namespace = "nli"

// Recorder exports prediction metrics on its own registry
type Recorder struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	unknowns    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with Go runtime and process collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by label, strategy and cache use.",
		}, []string{"label", "strategy", "cached"}),
		unknowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_predictions_total",
			Help:      "Predictions that resolved to unknown, by reason.",
		}, []string{"reason"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Prediction latency including cache lookup.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.predictions,
		r.unknowns,
		r.latency,
	)
	return r
}

// ObservePrediction records one prediction
func (r *Recorder) ObservePrediction(strategy string, outcome entity.Outcome, cached bool, latency time.Duration) {
	r.predictions.WithLabelValues(outcome.Label, strategy, strconv.FormatBool(cached)).Inc()
	if outcome.IsUnknown() {
		reason := string(outcome.Reason)
		if reason == "" {
			reason = "mapped_unknown"
		}
		r.unknowns.WithLabelValues(reason).Inc()
	}
	r.latency.WithLabelValues(strategy).Observe(latency.Seconds())
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
