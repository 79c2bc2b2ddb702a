package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/skycast/internal/airports"
	"github.com/ngmaloney/skycast/internal/estimator"
	"github.com/ngmaloney/skycast/internal/models"
	"github.com/ngmaloney/skycast/internal/pipeline"
	"github.com/ngmaloney/skycast/internal/ui"
)

// fixedWeather stands in for the provider so the demo runs offline
type fixedWeather struct{}

func (fixedWeather) FetchRoute(_ context.Context, origin, _ models.AirportRecord, _ time.Time) (models.WeatherPair, bool) {
	if origin.Code == "ORD" {
		// No data for Chicago shows the historical fallback
		return models.WeatherPair{}, false
	}
	return models.WeatherPair{
		Origin:      models.WeatherObservation{TemperatureAvgC: 3.5, TemperatureMinC: -1.2, TemperatureMaxC: 7.9, PrecipitationMM: 6.1, WindSpeedKPH: 28.4, SnowMM: 1.5},
		Destination: models.WeatherObservation{TemperatureAvgC: 17.2, TemperatureMinC: 12.8, TemperatureMaxC: 21.6, WindSpeedKPH: 11.3},
	}, true
}

// This demo runs the UI with a handful of airports and no network access
func main() {
	resolver := airports.NewResolver(
		map[string][2]float64{
			"JFK": {40.6398, -73.7789},
			"LAX": {33.9425, -118.4081},
			"ORD": {41.9786, -87.9048},
			"BOS": {42.3643, -71.0052},
			"SEA": {47.4490, -122.3093},
		},
		map[string]string{
			"JFK": "large_airport",
			"LAX": "large_airport",
			"ORD": "large_airport",
			"BOS": "large_airport",
		},
	)

	setup := func(progress chan<- string) (ui.Predictor, error) {
		progress <- "Loading demo models..."
		selector, err := estimator.LoadPairs("model")
		if err != nil {
			return nil, err
		}
		return pipeline.New(resolver, fixedWeather{}, selector, pipeline.Options{}), nil
	}

	p := tea.NewProgram(ui.NewModel(setup), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}
