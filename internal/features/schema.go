// Package features builds the fixed-schema feature record the delay and
// cancellation models were trained against.
package features

import (
	"github.com/ngmaloney/skycast/internal/models"
)

// Field names of the base schema, in order
const (
	FieldDate              = "DATE"
	FieldCancellationCode  = "CANCELLATION_CODE"
	FieldDepDelay          = "DEP_DELAY"
	FieldDepDelayNew       = "DEP_DELAY_NEW"
	FieldArrDelay          = "ARR_DELAY"
	FieldCarrierDelay      = "CARRIER_DELAY"
	FieldWeatherDelay      = "WEATHER_DELAY"
	FieldNASDelay          = "NAS_DELAY"
	FieldSecurityDelay     = "SECURITY_DELAY"
	FieldLateAircraftDelay = "LATE_AIRCRAFT_DELAY"
	FieldWeek              = "WEEK"
	FieldAirline           = "MKT_AIRLINE"
	FieldOrigin            = "ORIGIN_IATA"
	FieldDest              = "DEST_IATA"
	FieldSchDepTime        = "SCH_DEP_TIME"
	FieldSchArrTime        = "SCH_ARR_TIME"
	FieldSchDuration       = "SCH_DURATION"
	FieldDistance          = "DISTANCE"
	FieldOriginType        = "ORIGIN_TYPE"
	FieldOriginElev        = "ORIGIN_ELEV"
	FieldDestType          = "DEST_TYPE"
	FieldDestElev          = "DEST_ELEV"
	FieldIsWeekend         = "IS_WEEKEND"
	FieldIsHoliday         = "IS_HOLIDAY"
	FieldDepHour           = "DEP_HOUR"
	FieldArrHour           = "ARR_HOUR"
)

// Prefixes of the per-endpoint weather fields
const (
	OriginWeatherPrefix = "origin_"
	DestWeatherPrefix   = "dest_"
)

// Field is one entry of the schema
type Field struct {
	Name string
	Kind Kind
}

// BaseSchema lists the fields present in every vector
var BaseSchema = []Field{
	{FieldDate, Numeric},
	{FieldCancellationCode, Numeric},
	{FieldDepDelay, Numeric},
	{FieldDepDelayNew, Numeric},
	{FieldArrDelay, Numeric},
	{FieldCarrierDelay, Numeric},
	{FieldWeatherDelay, Numeric},
	{FieldNASDelay, Numeric},
	{FieldSecurityDelay, Numeric},
	{FieldLateAircraftDelay, Numeric},
	{FieldWeek, Categorical},
	{FieldAirline, Categorical},
	{FieldOrigin, Categorical},
	{FieldDest, Categorical},
	{FieldSchDepTime, Numeric},
	{FieldSchArrTime, Numeric},
	{FieldSchDuration, Numeric},
	{FieldDistance, Numeric},
	{FieldOriginType, Categorical},
	{FieldOriginElev, Numeric},
	{FieldDestType, Categorical},
	{FieldDestElev, Numeric},
	{FieldIsWeekend, Numeric},
	{FieldIsHoliday, Numeric},
	{FieldDepHour, Numeric},
	{FieldArrHour, Numeric},
}

// Fields known only after a flight has operated. The models expect them
// present, so they are always zero at request time.
var zeroFilled = map[string]bool{
	FieldDate:              true,
	FieldCancellationCode:  true,
	FieldDepDelay:          true,
	FieldDepDelayNew:       true,
	FieldArrDelay:          true,
	FieldCarrierDelay:      true,
	FieldWeatherDelay:      true,
	FieldNASDelay:          true,
	FieldSecurityDelay:     true,
	FieldLateAircraftDelay: true,
	FieldDistance:          true,
	FieldOriginElev:        true,
	FieldDestElev:          true,
	FieldIsHoliday:         true,
}

// IsZeroFilled reports whether name is one of the always-zero fields
func IsZeroFilled(name string) bool {
	return zeroFilled[name]
}

// WeatherSchema lists the twelve weather fields, origin first
func WeatherSchema() []Field {
	fields := make([]Field, 0, 2*len(models.WeatherMetrics))
	for _, prefix := range []string{OriginWeatherPrefix, DestWeatherPrefix} {
		for _, m := range models.WeatherMetrics {
			fields = append(fields, Field{Name: prefix + string(m), Kind: Numeric})
		}
	}
	return fields
}

// Schema returns the full field list with or without weather
func Schema(withWeather bool) []Field {
	fields := make([]Field, 0, len(BaseSchema)+12)
	fields = append(fields, BaseSchema...)
	if withWeather {
		fields = append(fields, WeatherSchema()...)
	}
	return fields
}
