package estimator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/skycast/internal/features"
	"github.com/ngmaloney/skycast/internal/models"
)

// constModel returns fixed outputs and counts how often it is used
type constModel struct {
	value float64
	err   error
	calls int
	seen  []features.FeatureVector
}

func (c *constModel) PredictProbability(fv features.FeatureVector) (float64, error) {
	c.calls++
	c.seen = append(c.seen, fv)
	return c.value, c.err
}

func (c *constModel) PredictDelay(fv features.FeatureVector) (float64, error) {
	c.calls++
	c.seen = append(c.seen, fv)
	return c.value, c.err
}

type fakePair struct {
	cancel, dep, arr *constModel
}

func newFakePair(p, dep, arr float64) fakePair {
	return fakePair{&constModel{value: p}, &constModel{value: dep}, &constModel{value: arr}}
}

func (f fakePair) pair(tag models.ModelTag) Pair {
	return Pair{Tag: tag, Cancellation: f.cancel, Departure: f.dep, Arrival: f.arr}
}

func (f fakePair) calls() int {
	return f.cancel.calls + f.dep.calls + f.arr.calls
}

func TestSelector_Select(t *testing.T) {
	w := newFakePair(0.1, 1, 2)
	h := newFakePair(0.2, 3, 4)
	s := NewSelector(w.pair(models.ModelWeather), h.pair(models.ModelHistorical))

	tests := []struct {
		name     string
		lead     int
		weather  bool
		expected models.ModelTag
	}{
		{"tomorrow with weather", 1, true, models.ModelWeather},
		{"today with weather", 0, true, models.ModelWeather},
		{"threshold day with weather", 7, true, models.ModelWeather},
		{"past date with weather", -3, true, models.ModelWeather},
		{"tomorrow without weather", 1, false, models.ModelHistorical},
		{"beyond threshold with weather", 8, true, models.ModelHistorical},
		{"far future with weather", 30, true, models.ModelHistorical},
		{"far future without weather", 30, false, models.ModelHistorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Select(tt.lead, tt.weather).Tag)
		})
	}
}

func TestSelector_CustomThreshold(t *testing.T) {
	s := &Selector{
		Weather:    Pair{Tag: models.ModelWeather},
		Historical: Pair{Tag: models.ModelHistorical},
		LeadDays:   3,
	}
	assert.Equal(t, models.ModelWeather, s.Select(3, true).Tag)
	assert.Equal(t, models.ModelHistorical, s.Select(4, true).Tag)

	s.LeadDays = 0
	assert.Equal(t, models.ModelWeather, s.Select(7, true).Tag)
}

func TestSelector_InferBeyondThresholdNeverUsesWeather(t *testing.T) {
	w := newFakePair(0.1, 1, 2)
	h := newFakePair(0.25, 12.5, -3)
	s := NewSelector(w.pair(models.ModelWeather), h.pair(models.ModelHistorical))

	for lead := 8; lead <= 60; lead++ {
		est, err := s.Infer(features.FeatureVector{}, lead, true)
		require.NoError(t, err)
		assert.Equal(t, models.ModelHistorical, est.Model)
	}

	assert.Zero(t, w.calls())
	assert.Equal(t, 53*3, h.calls())
}

func TestSelector_InferRunsAllThreeOnOneVector(t *testing.T) {
	w := newFakePair(0.05, 17.5, 9.25)
	h := newFakePair(0.5, 0, 0)
	s := NewSelector(w.pair(models.ModelWeather), h.pair(models.ModelHistorical))

	fv := features.Assemble(features.Input{
		Request:   models.FlightRequest{Origin: "JFK", Destination: "LAX", Carrier: "AA"},
		Departure: features.Clock{Hour: 8},
		Arrival:   features.Clock{Hour: 11, Minute: 30},
	})

	est, err := s.Infer(fv, 2, true)
	require.NoError(t, err)

	assert.Equal(t, Estimate{
		Model:                   models.ModelWeather,
		CancellationProbability: 0.05,
		DepartureDelay:          17.5,
		ArrivalDelay:            9.25,
	}, est)

	for _, m := range []*constModel{w.cancel, w.dep, w.arr} {
		require.Len(t, m.seen, 1)
		assert.Equal(t, fv.Names(), m.seen[0].Names())
		assert.Equal(t, fv.String(), m.seen[0].String())
	}
	assert.Zero(t, h.calls())
}

func TestSelector_InferReturnsModelError(t *testing.T) {
	boom := errors.New("feature mismatch")
	h := newFakePair(0.1, 0, 0)
	h.dep.err = boom
	s := NewSelector(Pair{Tag: models.ModelWeather}, h.pair(models.ModelHistorical))

	_, err := s.Infer(features.FeatureVector{}, 20, false)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, h.arr.calls, "arrival model runs after a departure failure")
}

func TestSelector_InferIncompletePair(t *testing.T) {
	s := NewSelector(Pair{Tag: models.ModelWeather}, Pair{Tag: models.ModelHistorical})

	_, err := s.Infer(features.FeatureVector{}, 1, true)
	assert.Error(t, err)
}
