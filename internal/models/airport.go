package models

// DefaultAirportType is used when a code has coordinates but no type entry
const DefaultAirportType = "large_airport"

// AirportRecord is one row of static reference data for an IATA code
type AirportRecord struct {
	Code      string  `json:"code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Type      string  `json:"type"` // e.g. "large_airport", "medium_airport"
}
