package features

import (
	"strings"
	"time"

	"github.com/ngmaloney/skycast/internal/models"
)

// Input carries everything Assemble needs. Times must already be parsed and
// airports resolved; Assemble does no validation.
type Input struct {
	Request     models.FlightRequest
	Departure   Clock
	Arrival     Clock
	Origin      models.AirportRecord
	Destination models.AirportRecord
	Weather     *models.WeatherPair // nil when weather is unavailable
}

// Assemble builds the feature vector for one request
func Assemble(in Input) FeatureVector {
	withWeather := in.Weather != nil
	fv := newVector(len(Schema(withWeather)))

	date := in.Request.FlightDate
	weekday := date.Weekday()

	derived := map[string]Value{
		FieldWeek:        cat(weekday.String()[:3]),
		FieldAirline:     cat(strings.ToUpper(in.Request.Carrier)),
		FieldOrigin:      cat(strings.ToUpper(in.Request.Origin)),
		FieldDest:        cat(strings.ToUpper(in.Request.Destination)),
		FieldSchDepTime:  num(float64(in.Departure.MinuteOfDay())),
		FieldSchArrTime:  num(float64(in.Arrival.MinuteOfDay())),
		FieldSchDuration: num(float64(ScheduledDuration(in.Departure, in.Arrival))),
		FieldOriginType:  cat(in.Origin.Type),
		FieldDestType:    cat(in.Destination.Type),
		FieldIsWeekend:   num(boolToFloat(weekday == time.Saturday || weekday == time.Sunday)),
		FieldDepHour:     num(float64(in.Departure.Hour)),
		FieldArrHour:     num(float64(in.Arrival.Hour)),
	}

	for _, f := range BaseSchema {
		if zeroFilled[f.Name] {
			fv.setNumber(f.Name, 0)
			continue
		}
		fv.set(f.Name, derived[f.Name])
	}

	if withWeather {
		for _, m := range models.WeatherMetrics {
			fv.setNumber(OriginWeatherPrefix+string(m), in.Weather.Origin.Value(m))
		}
		for _, m := range models.WeatherMetrics {
			fv.setNumber(DestWeatherPrefix+string(m), in.Weather.Destination.Value(m))
		}
	}

	return *fv
}

func num(v float64) Value { return Value{Kind: Numeric, Number: v} }

func cat(v string) Value { return Value{Kind: Categorical, Category: v} }

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
