package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePrediction("weather", OutcomeOK, 20*time.Millisecond)
	m.ObservePrediction("", OutcomeInvalidTime, time.Millisecond)
	m.WeatherAttempt("error")
	m.WeatherAttempt("error")
	m.CacheLookup(true)
	m.CacheLookup(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("weather", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("none", OutcomeInvalidTime)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.weatherAttempts.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.weatherCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.weatherCache.WithLabelValues("miss")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePrediction("historical", OutcomeOK, time.Second)
		m.WeatherAttempt("ok")
		m.CacheLookup(true)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.WeatherAttempt("ok")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `skycast_weather_fetch_attempts_total{result="ok"} 1`))
}
