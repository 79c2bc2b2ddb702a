package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ngmaloney/skycast/internal/models"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		res  models.PredictionResult
		want string
	}{
		{
			name: "weather model",
			res: models.PredictionResult{
				CancellationProbability: 0.0423,
				DepartureDelay:          12.34,
				ArrivalDelay:            7.05,
				Model:                   models.ModelWeather,
			},
			want: "✈️ Prediction Results (Weather-based Model):\n\n" +
				"🔴 Cancellation Probability: 4.2%\n" +
				"🟠 Expected Departure Delay: 12.3 minutes\n" +
				"🟡 Expected Arrival Delay: 7.0 minutes",
		},
		{
			name: "historical model with early arrival",
			res: models.PredictionResult{
				CancellationProbability: 0.125,
				DepartureDelay:          -3.25,
				ArrivalDelay:            -11,
				Model:                   models.ModelHistorical,
			},
			want: "✈️ Prediction Results (Historical Data Model):\n\n" +
				"🔴 Cancellation Probability: 12.5%\n" +
				"🟠 Expected Departure Delay: -3.2 minutes\n" +
				"🟡 Expected Arrival Delay: -11.0 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.res); got != tt.want {
				t.Errorf("FormatResult() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid time",
			err:  &InvalidTimeFormatError{Field: "departure_time", Value: "25:99"},
			want: "❌ Invalid time format. Please use HH:MM format (e.g., 08:00)",
		},
		{
			name: "wrapped unknown airport",
			err:  fmt.Errorf("handler: %w", &UnknownAirportError{Role: "origin", Code: "ZZZ"}),
			want: "❌ Invalid airport code. Please check your airport codes.",
		},
		{
			name: "prediction failed",
			err:  &PredictionFailedError{Message: "bad input"},
			want: "❌ Prediction failed: bad input",
		},
		{
			name: "anything else",
			err:  errors.New("context deadline exceeded"),
			want: "❌ Prediction failed: context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}
