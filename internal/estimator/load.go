package estimator

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ngmaloney/skycast/internal/models"
)

// Artifact file names inside the model directory
const (
	FileCancelWeather   = "pipe_cancel_weather.yaml"
	FileDepWeather      = "pipe_dep_weather.yaml"
	FileArrWeather      = "pipe_arr_weather.yaml"
	FileCancelNoWeather = "pipe_cancel_no_weather.yaml"
	FileDepNoWeather    = "pipe_dep_no_weather.yaml"
	FileArrNoWeather    = "pipe_arr_no_weather.yaml"
)

// LoadPairs reads the six artifacts from dir and returns a Selector over
// them. Any missing or malformed artifact is an error.
func LoadPairs(dir string) (*Selector, error) {
	weather, err := loadPair(dir, models.ModelWeather, FileCancelWeather, FileDepWeather, FileArrWeather)
	if err != nil {
		return nil, err
	}

	historical, err := loadPair(dir, models.ModelHistorical, FileCancelNoWeather, FileDepNoWeather, FileArrNoWeather)
	if err != nil {
		return nil, err
	}

	slog.Info("models loaded", "dir", dir)
	return NewSelector(weather, historical), nil
}

func loadPair(dir string, tag models.ModelTag, cancelFile, depFile, arrFile string) (Pair, error) {
	cancel, err := loadKind(dir, cancelFile, KindClassifier)
	if err != nil {
		return Pair{}, err
	}
	dep, err := loadKind(dir, depFile, KindRegressor)
	if err != nil {
		return Pair{}, err
	}
	arr, err := loadKind(dir, arrFile, KindRegressor)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Tag: tag, Cancellation: cancel, Departure: dep, Arrival: arr}, nil
}

func loadKind(dir, file, kind string) (*LinearModel, error) {
	m, err := LoadLinearModel(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	if m.Kind != kind {
		return nil, fmt.Errorf("%s: kind %q, want %q: %w", file, m.Kind, kind, ErrWrongKind)
	}
	return m, nil
}
