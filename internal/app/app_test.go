package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/skycast/internal/config"
	"github.com/ngmaloney/skycast/internal/models"
	"github.com/ngmaloney/skycast/internal/pipeline"
)

const dailyResponse = `{"meta":{},"data":[{"date":"2025-03-14","tavg":6.4,"tmin":2.2,"tmax":11.1,"prcp":3.8,"snow":null,"wdir":250,"wspd":21.6,"wpgt":null,"pres":1012.3,"tsun":null}]}`

func testConfig(t *testing.T, weatherURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	coords := filepath.Join(dir, "airports_info_.csv")
	types := filepath.Join(dir, "type_airport.csv")
	require.NoError(t, os.WriteFile(coords, []byte("Airport,Latitude,Longitude\nJFK,40.6398,-73.7789\nLAX,33.9425,-118.4081\n"), 0o644))
	require.NoError(t, os.WriteFile(types, []byte("origin,type\nJFK,large_airport\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.DBPath = filepath.Join(dir, "data", "skycast.db")
	cfg.AirportsCSV = coords
	cfg.TypesCSV = types
	cfg.ModelDir = filepath.Join("..", "..", "model")
	cfg.Weather.BaseURL = weatherURL
	cfg.Weather.RetryDelay = time.Millisecond
	cfg.Weather.RequestsPerSecond = 0
	return cfg
}

func weatherServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dailyResponse))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func tomorrow() time.Time {
	y, m, d := time.Now().AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_EndToEnd(t *testing.T) {
	var calls atomic.Int32
	cfg := testConfig(t, weatherServer(t, &calls).URL)

	progress := make(chan string, 64)
	a, err := Build(context.Background(), cfg, progress, prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.Close()
	close(progress)

	var lines []string
	for line := range progress {
		lines = append(lines, line)
	}
	assert.Contains(t, lines, "Ready")
	assert.Equal(t, 2, a.Airports.Len())

	req := models.FlightRequest{
		Origin: "jfk", Destination: "lax", Carrier: "AA",
		FlightDate: tomorrow(), DepartureTime: "08:00", ArrivalTime: "11:30",
	}

	res, err := a.Pipeline.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.ModelWeather, res.Model)
	assert.Equal(t, 1, res.LeadTimeDays)
	assert.Equal(t, int32(2), calls.Load())

	// Second run is served from the cache
	_, err = a.Pipeline.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	req.FlightDate = tomorrow().AddDate(0, 0, 30)
	res, err = a.Pipeline.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.ModelHistorical, res.Model)
	assert.Equal(t, int32(2), calls.Load())

	req.Origin = "ZZZ"
	_, err = a.Pipeline.Predict(context.Background(), req)
	assert.ErrorIs(t, err, pipeline.ErrUnknownAirport)
}

func TestBuild_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	var calls atomic.Int32
	cfg := testConfig(t, weatherServer(t, &calls).URL)
	cfg.RedisURL = "redis://" + mr.Addr()

	a, err := Build(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	req := models.FlightRequest{
		Origin: "JFK", Destination: "LAX", Carrier: "DL",
		FlightDate: tomorrow(), DepartureTime: "06:15", ArrivalTime: "09:05",
	}
	_, err = a.Pipeline.Predict(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, a.Close())
	assert.Len(t, mr.Keys(), 2)

	// A fresh process sharing the same Redis makes no provider calls
	b, err := Build(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	defer b.Close()

	res, err := b.Pipeline.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.ModelWeather, res.Model)
	assert.Equal(t, int32(2), calls.Load())
}

func TestBuild_Failures(t *testing.T) {
	t.Run("missing models", func(t *testing.T) {
		cfg := testConfig(t, "http://127.0.0.1:1")
		cfg.ModelDir = t.TempDir()

		_, err := Build(context.Background(), cfg, nil, nil)
		assert.Error(t, err)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		cfg := testConfig(t, "http://127.0.0.1:1")
		cfg.RedisURL = "127.0.0.1:1"

		_, err := Build(context.Background(), cfg, nil, nil)
		assert.Error(t, err)
	})

	t.Run("missing reference data", func(t *testing.T) {
		cfg := testConfig(t, "http://127.0.0.1:1")
		cfg.AirportsCSV = filepath.Join(t.TempDir(), "nope.csv")

		_, err := Build(context.Background(), cfg, nil, nil)
		assert.Error(t, err)
	})
}
