package models

import "math"

// WeatherObservation is one day's aggregate weather at a coordinate.
// Every field is always set; values the provider did not report are 0.0.
type WeatherObservation struct {
	TemperatureAvgC float64 `json:"temperature_avg_C"`
	TemperatureMinC float64 `json:"temperature_min_C"`
	TemperatureMaxC float64 `json:"temperature_max_C"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	WindSpeedKPH    float64 `json:"wind_speed_kph"`
	SnowMM          float64 `json:"snow_mm"`
}

// WeatherMetric names a single field of a WeatherObservation, in the
// spelling the models were trained with
type WeatherMetric string

const (
	MetricTemperatureAvg WeatherMetric = "temperature_avg_C"
	MetricTemperatureMin WeatherMetric = "temperature_min_C"
	MetricTemperatureMax WeatherMetric = "temperature_max_C"
	MetricPrecipitation  WeatherMetric = "precipitation_mm"
	MetricWindSpeed      WeatherMetric = "wind_speed_kph"
	MetricSnow           WeatherMetric = "snow_mm"
)

// WeatherMetrics lists the metrics in feature order
var WeatherMetrics = []WeatherMetric{
	MetricTemperatureAvg,
	MetricTemperatureMin,
	MetricTemperatureMax,
	MetricPrecipitation,
	MetricWindSpeed,
	MetricSnow,
}

// Value returns the observation's value for metric m
func (w WeatherObservation) Value(m WeatherMetric) float64 {
	switch m {
	case MetricTemperatureAvg:
		return w.TemperatureAvgC
	case MetricTemperatureMin:
		return w.TemperatureMinC
	case MetricTemperatureMax:
		return w.TemperatureMaxC
	case MetricPrecipitation:
		return w.PrecipitationMM
	case MetricWindSpeed:
		return w.WindSpeedKPH
	case MetricSnow:
		return w.SnowMM
	}
	return 0
}

// ObservationFromNullable builds an observation from provider values where
// nil or NaN means "not reported". Missing values become 0.0.
func ObservationFromNullable(tavg, tmin, tmax, prcp, wspd, snow *float64) WeatherObservation {
	return WeatherObservation{
		TemperatureAvgC: zeroIfMissing(tavg),
		TemperatureMinC: zeroIfMissing(tmin),
		TemperatureMaxC: zeroIfMissing(tmax),
		PrecipitationMM: zeroIfMissing(prcp),
		WindSpeedKPH:    zeroIfMissing(wspd),
		SnowMM:          zeroIfMissing(snow),
	}
}

func zeroIfMissing(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0.0
	}
	return *v
}

// WeatherPair holds observations for both ends of a route
type WeatherPair struct {
	Origin      WeatherObservation
	Destination WeatherObservation
}
