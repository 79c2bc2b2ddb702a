// Package metrics exposes Prometheus counters for the prediction pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for skycast_predictions_total
const (
	OutcomeOK             = "ok"
	OutcomeInvalidTime    = "invalid_time"
	OutcomeUnknownAirport = "unknown_airport"
	OutcomeFailed         = "failed"
)

// Metrics groups the collectors registered for one process
type Metrics struct {
	predictions        *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	weatherAttempts    *prometheus.CounterVec
	weatherCache       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_predictions_total",
				Help: "Prediction requests by model pair and outcome.",
			},
			[]string{"model", "outcome"},
		),
		predictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skycast_prediction_duration_seconds",
			Help:    "End-to-end prediction pipeline latency.",
			Buckets: prometheus.DefBuckets,
		}),
		weatherAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_weather_fetch_attempts_total",
				Help: "Calls to the weather provider by result.",
			},
			[]string{"result"},
		),
		weatherCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_weather_cache_total",
				Help: "Weather cache lookups by result.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.predictions, m.predictionDuration, m.weatherAttempts, m.weatherCache)
	return m
}

// ObservePrediction records one finished pipeline run. model is empty when
// the request failed before a model pair was chosen.
func (m *Metrics) ObservePrediction(model, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if model == "" {
		model = "none"
	}
	m.predictions.WithLabelValues(model, outcome).Inc()
	m.predictionDuration.Observe(elapsed.Seconds())
}

// WeatherAttempt records one call to the provider ("ok", "empty", "error",
// "throttled")
func (m *Metrics) WeatherAttempt(result string) {
	if m == nil {
		return
	}
	m.weatherAttempts.WithLabelValues(result).Inc()
}

// CacheLookup records a weather cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.weatherCache.WithLabelValues(result).Inc()
}

// Handler serves the collectors gathered by g in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
