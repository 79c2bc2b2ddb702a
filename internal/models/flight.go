package models

import (
	"strings"
	"time"
)

// Defaults applied when a form field is left empty
const (
	DefaultOrigin        = "JFK"
	DefaultDestination   = "LAX"
	DefaultCarrier       = "AA"
	DefaultDepartureTime = "08:00"
	DefaultArrivalTime   = "11:30"
)

// FlightRequest is a single user submission to the prediction pipeline.
// Times are kept as the raw strings the user typed; parsing happens in the
// pipeline so that a bad value can be reported as such.
type FlightRequest struct {
	Origin        string    `json:"origin"`         // IATA code, any case
	Destination   string    `json:"destination"`    // IATA code, any case
	Carrier       string    `json:"carrier"`        // marketing carrier, e.g. "AA"
	FlightDate    time.Time `json:"flight_date"`    // calendar date of departure
	DepartureTime string    `json:"departure_time"` // "HH:MM" or "HH:MM:SS"
	ArrivalTime   string    `json:"arrival_time"`   // "HH:MM" or "HH:MM:SS"
}

// WithDefaults returns a copy of the request with empty fields replaced by
// the form defaults. A zero FlightDate is left alone.
func (r FlightRequest) WithDefaults() FlightRequest {
	r.Origin = orDefault(r.Origin, DefaultOrigin)
	r.Destination = orDefault(r.Destination, DefaultDestination)
	r.Carrier = orDefault(r.Carrier, DefaultCarrier)
	r.DepartureTime = orDefault(r.DepartureTime, DefaultDepartureTime)
	r.ArrivalTime = orDefault(r.ArrivalTime, DefaultArrivalTime)
	return r
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
