// Package estimator selects and runs the delay and cancellation models.
package estimator

import (
	"fmt"

	"github.com/ngmaloney/skycast/internal/features"
	"github.com/ngmaloney/skycast/internal/models"
)

// DefaultWeatherLeadDays is the furthest lead time for which the weather
// models are used
const DefaultWeatherLeadDays = 7

// Classifier returns the probability of the positive class
type Classifier interface {
	PredictProbability(fv features.FeatureVector) (float64, error)
}

// Regressor returns a signed delay in minutes
type Regressor interface {
	PredictDelay(fv features.FeatureVector) (float64, error)
}

// Pair is one set of the three models trained together
type Pair struct {
	Tag          models.ModelTag
	Cancellation Classifier
	Departure    Regressor
	Arrival      Regressor
}

// Estimate is the raw output of one pair
type Estimate struct {
	Model                   models.ModelTag
	CancellationProbability float64
	DepartureDelay          float64
	ArrivalDelay            float64
}

// Selector chooses between the weather and historical pairs
type Selector struct {
	Weather    Pair
	Historical Pair
	// LeadDays is the weather threshold; zero means DefaultWeatherLeadDays
	LeadDays int
}

// NewSelector creates a Selector with the default threshold
func NewSelector(weather, historical Pair) *Selector {
	return &Selector{Weather: weather, Historical: historical, LeadDays: DefaultWeatherLeadDays}
}

func (s *Selector) threshold() int {
	if s.LeadDays == 0 {
		return DefaultWeatherLeadDays
	}
	return s.LeadDays
}

// Select returns the weather pair when the flight is within the lead-time
// threshold and weather was obtained for both airports. Negative lead times
// count as within the threshold.
func (s *Selector) Select(leadDays int, weatherAvailable bool) Pair {
	if leadDays <= s.threshold() && weatherAvailable {
		return s.Weather
	}
	return s.Historical
}

// Infer runs all three models of the selected pair on the same vector.
// Model errors are returned as they are.
func (s *Selector) Infer(fv features.FeatureVector, leadDays int, weatherAvailable bool) (Estimate, error) {
	p := s.Select(leadDays, weatherAvailable)
	if p.Cancellation == nil || p.Departure == nil || p.Arrival == nil {
		return Estimate{}, fmt.Errorf("model pair %q is incomplete", p.Tag)
	}

	prob, err := p.Cancellation.PredictProbability(fv)
	if err != nil {
		return Estimate{}, err
	}
	dep, err := p.Departure.PredictDelay(fv)
	if err != nil {
		return Estimate{}, err
	}
	arr, err := p.Arrival.PredictDelay(fv)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		Model:                   p.Tag,
		CancellationProbability: prob,
		DepartureDelay:          dep,
		ArrivalDelay:            arr,
	}, nil
}
