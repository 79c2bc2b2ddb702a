package pipeline

import (
	"errors"
	"fmt"

	"github.com/ngmaloney/skycast/internal/models"
)

// User-facing messages
const (
	MsgInvalidTimeFormat = "❌ Invalid time format. Please use HH:MM format (e.g., 08:00)"
	MsgUnknownAirport    = "❌ Invalid airport code. Please check your airport codes."
	msgPredictionFailed  = "❌ Prediction failed: %s"
)

// FormatResult renders a prediction for display
func FormatResult(r models.PredictionResult) string {
	return fmt.Sprintf(`✈️ Prediction Results (%s):

🔴 Cancellation Probability: %.1f%%
🟠 Expected Departure Delay: %.1f minutes
🟡 Expected Arrival Delay: %.1f minutes`,
		r.Model.DisplayName(),
		r.CancellationProbability*100,
		r.DepartureDelay,
		r.ArrivalDelay,
	)
}

// FormatError renders a pipeline error for display
func FormatError(err error) string {
	var failed *PredictionFailedError
	switch {
	case errors.Is(err, ErrInvalidTimeFormat):
		return MsgInvalidTimeFormat
	case errors.Is(err, ErrUnknownAirport):
		return MsgUnknownAirport
	case errors.As(err, &failed):
		return fmt.Sprintf(msgPredictionFailed, failed.Message)
	default:
		return fmt.Sprintf(msgPredictionFailed, err)
	}
}
