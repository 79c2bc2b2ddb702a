// Package pipeline runs one flight through validation, airport lookup,
// optional weather enrichment, feature assembly and model inference.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ngmaloney/skycast/internal/airports"
	"github.com/ngmaloney/skycast/internal/estimator"
	"github.com/ngmaloney/skycast/internal/features"
	"github.com/ngmaloney/skycast/internal/metrics"
	"github.com/ngmaloney/skycast/internal/models"
)

// DefaultRequestTimeout bounds one Predict call
const DefaultRequestTimeout = 30 * time.Second

// AirportResolver looks up reference data for an IATA code
type AirportResolver interface {
	Resolve(code string) (models.AirportRecord, error)
}

// WeatherFetcher returns observations for both ends of a route. ok is false
// when either end has no data.
type WeatherFetcher interface {
	FetchRoute(ctx context.Context, origin, dest models.AirportRecord, date time.Time) (models.WeatherPair, bool)
}

// Inferrer picks a model pair and runs it
type Inferrer interface {
	Infer(fv features.FeatureVector, leadDays int, weatherAvailable bool) (estimator.Estimate, error)
}

// Options tunes a Pipeline. Zero values select the defaults.
type Options struct {
	RequestTimeout  time.Duration
	WeatherLeadDays int
	Metrics         *metrics.Metrics
	Now             func() time.Time
	Logger          *slog.Logger
}

// Pipeline is stateless across requests and safe for concurrent use
type Pipeline struct {
	airports AirportResolver
	weather  WeatherFetcher
	models   Inferrer

	timeout  time.Duration
	leadDays int
	metrics  *metrics.Metrics
	now      func() time.Time
	logger   *slog.Logger
}

// New creates a Pipeline
func New(resolver AirportResolver, weather WeatherFetcher, inferrer Inferrer, opts Options) *Pipeline {
	p := &Pipeline{
		airports: resolver,
		weather:  weather,
		models:   inferrer,
		timeout:  opts.RequestTimeout,
		leadDays: opts.WeatherLeadDays,
		metrics:  opts.Metrics,
		now:      opts.Now,
		logger:   opts.Logger,
	}
	if p.timeout == 0 {
		p.timeout = DefaultRequestTimeout
	}
	if p.leadDays == 0 {
		p.leadDays = estimator.DefaultWeatherLeadDays
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Predict runs the full pipeline for req. The returned error is one of
// *InvalidTimeFormatError, *UnknownAirportError or *PredictionFailedError.
func (p *Pipeline) Predict(ctx context.Context, req models.FlightRequest) (result models.PredictionResult, err error) {
	began := time.Now()
	requestID := uuid.NewString()
	logger := p.logger.With("request_id", requestID)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	defer func() {
		p.metrics.ObservePrediction(string(result.Model), outcomeOf(err), time.Since(began))
	}()

	// Validate
	dep, err := features.ParseClock(req.DepartureTime)
	if err != nil {
		return models.PredictionResult{}, &InvalidTimeFormatError{Field: "departure_time", Value: req.DepartureTime, Err: err}
	}
	arr, err := features.ParseClock(req.ArrivalTime)
	if err != nil {
		return models.PredictionResult{}, &InvalidTimeFormatError{Field: "arrival_time", Value: req.ArrivalTime, Err: err}
	}

	// ResolveAirports
	origin, err := p.airports.Resolve(req.Origin)
	if err != nil {
		return models.PredictionResult{}, &UnknownAirportError{Role: "origin", Code: req.Origin, Err: err}
	}
	dest, err := p.airports.Resolve(req.Destination)
	if err != nil {
		return models.PredictionResult{}, &UnknownAirportError{Role: "destination", Code: req.Destination, Err: err}
	}

	lead := LeadDays(p.now(), req.FlightDate)
	logger = logger.With("origin", origin.Code, "dest", dest.Code, "lead_days", lead)

	// MaybeFetchWeather
	var weather *models.WeatherPair
	if lead <= p.leadDays {
		pair, ok := p.weather.FetchRoute(ctx, origin, dest, req.FlightDate)
		if ok {
			weather = &pair
		} else {
			logger.Info("weather unavailable, using historical models")
		}
	}

	est, err := p.assembleAndInfer(features.Input{
		Request:     req,
		Departure:   dep,
		Arrival:     arr,
		Origin:      origin,
		Destination: dest,
		Weather:     weather,
	}, lead)
	if err != nil {
		logger.Error("prediction failed", "error", err)
		return models.PredictionResult{}, err
	}

	logger.Info("prediction complete", "model", est.Model)
	return models.PredictionResult{
		RequestID:               requestID,
		CancellationProbability: est.CancellationProbability,
		DepartureDelay:          est.DepartureDelay,
		ArrivalDelay:            est.ArrivalDelay,
		Model:                   est.Model,
		LeadTimeDays:            lead,
		DistanceMiles:           airports.RouteDistance(origin, dest),
		GeneratedAt:             p.now(),
	}, nil
}

func (p *Pipeline) assembleAndInfer(in features.Input, lead int) (est estimator.Estimate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PredictionFailedError{Message: fmt.Sprint(r)}
		}
	}()

	fv := features.Assemble(in)
	est, err = p.models.Infer(fv, lead, in.Weather != nil)
	if err != nil {
		return estimator.Estimate{}, &PredictionFailedError{Message: err.Error(), Err: err}
	}
	return est, nil
}

// LeadDays returns the number of calendar days from now to date. Both are
// compared as dates in now's location; the result is negative for past
// dates.
func LeadDays(now, date time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	fy, fm, fd := date.Date()
	flight := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	return int((flight.Unix() - today.Unix()) / 86400)
}

func outcomeOf(err error) string {
	switch err.(type) {
	case nil:
		return metrics.OutcomeOK
	case *InvalidTimeFormatError:
		return metrics.OutcomeInvalidTime
	case *UnknownAirportError:
		return metrics.OutcomeUnknownAirport
	default:
		return metrics.OutcomeFailed
	}
}
