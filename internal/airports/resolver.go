// Package airports resolves IATA codes to coordinates and airport type
// using the static reference tables loaded at startup.
package airports

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ngmaloney/skycast/internal/models"
)

// ErrUnknownAirport is returned when a code has no coordinates
var ErrUnknownAirport = errors.New("unknown airport code")

type coordinates struct {
	lat, lon float64
}

// Resolver answers reference lookups from in-memory copies of the
// coordinate and type tables. It is read-only after construction and safe
// for concurrent use.
type Resolver struct {
	coords map[string]coordinates
	types  map[string]string
}

// NewResolver builds a resolver from already-loaded tables. Keys are
// normalised to upper case.
func NewResolver(coords map[string][2]float64, types map[string]string) *Resolver {
	r := &Resolver{
		coords: make(map[string]coordinates, len(coords)),
		types:  make(map[string]string, len(types)),
	}
	for code, c := range coords {
		r.coords[normalize(code)] = coordinates{lat: c[0], lon: c[1]}
	}
	for code, t := range types {
		r.types[normalize(code)] = t
	}
	return r
}

// LoadResolver reads both reference tables from db into memory
func LoadResolver(db *sql.DB) (*Resolver, error) {
	r := &Resolver{
		coords: make(map[string]coordinates),
		types:  make(map[string]string),
	}

	rows, err := db.Query("SELECT code, latitude, longitude FROM airport_coords")
	if err != nil {
		return nil, fmt.Errorf("querying airport coordinates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var c coordinates
		if err := rows.Scan(&code, &c.lat, &c.lon); err != nil {
			return nil, fmt.Errorf("scanning airport coordinates: %w", err)
		}
		r.coords[normalize(code)] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading airport coordinates: %w", err)
	}

	typeRows, err := db.Query("SELECT code, type FROM airport_types")
	if err != nil {
		return nil, fmt.Errorf("querying airport types: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var code, kind string
		if err := typeRows.Scan(&code, &kind); err != nil {
			return nil, fmt.Errorf("scanning airport types: %w", err)
		}
		r.types[normalize(code)] = kind
	}
	if err := typeRows.Err(); err != nil {
		return nil, fmt.Errorf("reading airport types: %w", err)
	}

	return r, nil
}

// Coordinates returns the latitude and longitude for code. ok is false when
// the code is not in the coordinate table.
func (r *Resolver) Coordinates(code string) (lat, lon float64, ok bool) {
	c, ok := r.coords[normalize(code)]
	if !ok {
		return 0, 0, false
	}
	return c.lat, c.lon, true
}

// Type returns the classification for code, or DefaultAirportType when the
// type table has no entry. Unlike Coordinates this never fails.
func (r *Resolver) Type(code string) string {
	if t, ok := r.types[normalize(code)]; ok && t != "" {
		return t
	}
	return models.DefaultAirportType
}

// Resolve returns the full record for code. A code without coordinates is
// an error; a code without a type entry falls back to DefaultAirportType.
func (r *Resolver) Resolve(code string) (models.AirportRecord, error) {
	code = normalize(code)
	lat, lon, ok := r.Coordinates(code)
	if !ok {
		return models.AirportRecord{}, fmt.Errorf("%w: %q", ErrUnknownAirport, code)
	}
	return models.AirportRecord{
		Code:      code,
		Latitude:  lat,
		Longitude: lon,
		Type:      r.Type(code),
	}, nil
}

// Len returns the number of codes with coordinates
func (r *Resolver) Len() int {
	return len(r.coords)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
