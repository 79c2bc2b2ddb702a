// Package weather fetches daily weather observations for the travel date,
// with retries and a process-wide cache in front of the provider.
package weather

import (
	"context"
	"errors"
	"time"

	"github.com/ngmaloney/skycast/internal/models"
)

// ErrNoObservation is returned by a Source that answered but had no
// record for the requested day
var ErrNoObservation = errors.New("no weather observation for date")

// ErrThrottled is returned when the local rate limit kept a request from
// being sent. The provider was never asked.
var ErrThrottled = errors.New("weather request throttled")

// Source is a remote provider of daily aggregate observations
type Source interface {
	// DailyObservation returns the aggregate for one coordinate and day
	DailyObservation(ctx context.Context, lat, lon float64, date time.Time) (models.WeatherObservation, error)
}
