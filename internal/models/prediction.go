package models

import "time"

// ModelTag identifies which estimator pair produced a prediction
type ModelTag string

const (
	ModelWeather    ModelTag = "weather"
	ModelHistorical ModelTag = "historical"
)

// DisplayName returns the label shown to users
func (t ModelTag) DisplayName() string {
	if t == ModelWeather {
		return "Weather-based Model"
	}
	return "Historical Data Model"
}

// PredictionResult is the output of one pipeline run
type PredictionResult struct {
	RequestID               string    `json:"request_id"`
	CancellationProbability float64   `json:"cancellation_probability"` // 0.0 - 1.0
	DepartureDelay          float64   `json:"departure_delay_minutes"`  // signed
	ArrivalDelay            float64   `json:"arrival_delay_minutes"`    // signed
	Model                   ModelTag  `json:"model"`
	LeadTimeDays            int       `json:"lead_time_days"`
	DistanceMiles           float64   `json:"distance_miles"` // informational, not a model input
	GeneratedAt             time.Time `json:"generated_at"`
}
