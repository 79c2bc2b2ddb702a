package estimator

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/skycast/internal/features"
	"github.com/ngmaloney/skycast/internal/models"
)

const regressorYAML = `
name: dep_test
kind: regressor
intercept: 2
numeric:
  SCH_DURATION: 0.5
  DEP_HOUR: 1
  origin_snow_mm: 10
categorical:
  MKT_AIRLINE:
    AA: 3
    DL: -4
  WEEK:
    Fri: 1.5
`

const classifierYAML = `
name: cancel_test
kind: classifier
intercept: 0
numeric:
  IS_WEEKEND: 0
`

func testVector(carrier string, weather *models.WeatherPair) features.FeatureVector {
	return features.Assemble(features.Input{
		Request: models.FlightRequest{
			Origin: "JFK", Destination: "LAX", Carrier: carrier,
		},
		Departure: features.Clock{Hour: 8},
		Arrival:   features.Clock{Hour: 11, Minute: 30},
		Origin:    models.AirportRecord{Type: "large_airport"},
		Weather:   weather,
	})
}

func TestLinearModel_PredictDelay(t *testing.T) {
	m, err := ParseLinearModel([]byte(regressorYAML))
	require.NoError(t, err)

	// zero time.Time is a Monday, so WEEK=Mon adds nothing
	// 2 + 0.5*210 + 1*8 + 3 = 118
	got, err := m.PredictDelay(testVector("aa", nil))
	require.NoError(t, err)
	assert.InDelta(t, 118.0, got, 1e-9)

	// unknown carrier adds nothing
	got, err = m.PredictDelay(testVector("ZZ", nil))
	require.NoError(t, err)
	assert.InDelta(t, 115.0, got, 1e-9)

	// weather fields count when present
	got, err = m.PredictDelay(testVector("DL", &models.WeatherPair{
		Origin: models.WeatherObservation{SnowMM: 1.5},
	}))
	require.NoError(t, err)
	assert.InDelta(t, 2+105+8-4+15.0, got, 1e-9)
}

func TestLinearModel_PredictProbability(t *testing.T) {
	m, err := ParseLinearModel([]byte(classifierYAML))
	require.NoError(t, err)

	p, err := m.PredictProbability(testVector("AA", nil))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	m.Intercept = 2
	p, err = m.PredictProbability(testVector("AA", nil))
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2)), p, 1e-12)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestLinearModel_WrongKind(t *testing.T) {
	reg, err := ParseLinearModel([]byte(regressorYAML))
	require.NoError(t, err)
	_, err = reg.PredictProbability(testVector("AA", nil))
	assert.ErrorIs(t, err, ErrWrongKind)

	cls, err := ParseLinearModel([]byte(classifierYAML))
	require.NoError(t, err)
	_, err = cls.PredictDelay(testVector("AA", nil))
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestLinearModel_FieldKindMismatch(t *testing.T) {
	m, err := ParseLinearModel([]byte(`
name: bad
kind: regressor
numeric:
  WEEK: 1
`))
	require.NoError(t, err)

	_, err = m.PredictDelay(testVector("AA", nil))
	assert.Error(t, err)
}

func TestParseLinearModel_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", "name: x\nkind: forest\n"},
		{"missing kind", "name: x\nintercept: 1\n"},
		{"not yaml", "name: [x\n"},
		{"non-finite intercept", "name: x\nkind: regressor\nintercept: .nan\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLinearModel([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func writeArtifacts(t *testing.T, dir string, skip string) {
	t.Helper()
	files := map[string]string{
		FileCancelWeather:   classifierYAML,
		FileDepWeather:      regressorYAML,
		FileArrWeather:      regressorYAML,
		FileCancelNoWeather: classifierYAML,
		FileDepNoWeather:    regressorYAML,
		FileArrNoWeather:    regressorYAML,
	}
	for name, body := range files {
		if name == skip {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestLoadPairs(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, "")

	s, err := LoadPairs(dir)
	require.NoError(t, err)
	assert.Equal(t, models.ModelWeather, s.Weather.Tag)
	assert.Equal(t, models.ModelHistorical, s.Historical.Tag)
	assert.Equal(t, DefaultWeatherLeadDays, s.LeadDays)

	est, err := s.Infer(testVector("AA", nil), 30, false)
	require.NoError(t, err)
	assert.Equal(t, models.ModelHistorical, est.Model)
	assert.InDelta(t, 0.5, est.CancellationProbability, 1e-12)
}

func TestLoadPairs_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, FileArrNoWeather)

	_, err := LoadPairs(dir)
	assert.Error(t, err)
}

func TestLoadPairs_KindSwapped(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileCancelWeather), []byte(regressorYAML), 0o644))

	_, err := LoadPairs(dir)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestLoadPairs_BundledArtifacts(t *testing.T) {
	s, err := LoadPairs(filepath.Join("..", "..", "model"))
	require.NoError(t, err)

	weather := &models.WeatherPair{
		Origin:      models.WeatherObservation{TemperatureMinC: -2, PrecipitationMM: 4, WindSpeedKPH: 30, SnowMM: 2},
		Destination: models.WeatherObservation{TemperatureMinC: 12},
	}

	for _, tc := range []struct {
		lead    int
		weather *models.WeatherPair
		want    models.ModelTag
	}{
		{1, weather, models.ModelWeather},
		{30, nil, models.ModelHistorical},
	} {
		est, err := s.Infer(testVector("AA", tc.weather), tc.lead, tc.weather != nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, est.Model)
		assert.GreaterOrEqual(t, est.CancellationProbability, 0.0)
		assert.LessOrEqual(t, est.CancellationProbability, 1.0)
	}
}
