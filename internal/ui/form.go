package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ngmaloney/skycast/internal/models"
)

// Form fields in tab order
const (
	fieldOrigin = iota
	fieldDestination
	fieldDate
	fieldCarrier
	fieldDeparture
	fieldArrival
	fieldCount
)

const dateLayout = "2006-01-02"

var fieldLabels = [fieldCount]string{
	"Departure",
	"Destination",
	"Date",
	"Airline",
	"Departs at",
	"Arrives at",
}

func newInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = limit
	ti.Width = 20
	return ti
}

// newFormInputs builds the six inputs prefilled with the defaults
func newFormInputs(today time.Time) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	inputs[fieldOrigin] = newInput(models.DefaultOrigin, models.DefaultOrigin, 4)
	inputs[fieldDestination] = newInput(models.DefaultDestination, models.DefaultDestination, 4)
	inputs[fieldDate] = newInput("YYYY-MM-DD", today.Format(dateLayout), 10)
	inputs[fieldCarrier] = newInput(models.DefaultCarrier, models.DefaultCarrier, 3)
	inputs[fieldDeparture] = newInput(models.DefaultDepartureTime, models.DefaultDepartureTime, 8)
	inputs[fieldArrival] = newInput(models.DefaultArrivalTime, models.DefaultArrivalTime, 8)
	inputs[fieldOrigin].Focus()
	return inputs
}

// buildRequest reads the form. ok is false when the date does not parse;
// every other field is passed through for the pipeline to judge.
func buildRequest(inputs []textinput.Model, today time.Time) (models.FlightRequest, bool) {
	req := models.FlightRequest{
		Origin:        inputs[fieldOrigin].Value(),
		Destination:   inputs[fieldDestination].Value(),
		Carrier:       inputs[fieldCarrier].Value(),
		DepartureTime: inputs[fieldDeparture].Value(),
		ArrivalTime:   inputs[fieldArrival].Value(),
	}.WithDefaults()

	date := strings.TrimSpace(inputs[fieldDate].Value())
	if date == "" {
		y, m, d := today.Date()
		req.FlightDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return req, true
	}

	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return models.FlightRequest{}, false
	}
	req.FlightDate = t
	return req, true
}
