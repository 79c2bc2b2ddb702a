// Package app wires the configured components into a ready pipeline. All
// three binaries start through Build.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ngmaloney/skycast/internal/airports"
	"github.com/ngmaloney/skycast/internal/cache"
	"github.com/ngmaloney/skycast/internal/config"
	"github.com/ngmaloney/skycast/internal/estimator"
	"github.com/ngmaloney/skycast/internal/metrics"
	"github.com/ngmaloney/skycast/internal/pipeline"
	"github.com/ngmaloney/skycast/internal/weather"
)

// App holds the long-lived components of one process
type App struct {
	Config   *config.Config
	Airports *airports.Resolver
	Models   *estimator.Selector
	Weather  *weather.Client
	Pipeline *pipeline.Pipeline
	Metrics  *metrics.Metrics

	closers []func() error
}

// Build provisions reference data if needed, loads the models, and
// connects the weather cache. Progress lines go to progress when it is
// non-nil. reg may be nil to skip metrics.
func Build(ctx context.Context, cfg *config.Config, progress chan<- string, reg prometheus.Registerer) (*App, error) {
	report := func(msg string) {
		if progress != nil {
			progress <- msg
		} else {
			slog.Info(msg)
		}
	}

	a := &App{Config: cfg}
	if reg != nil {
		a.Metrics = metrics.New(reg)
	}

	if err := airports.Provision(cfg.DBPath, Sources(cfg), progress); err != nil {
		return nil, fmt.Errorf("provisioning airports: %w", err)
	}
	resolver, err := airports.Load(cfg.DBPath, Sources(cfg))
	if err != nil {
		return nil, fmt.Errorf("loading airports: %w", err)
	}
	a.Airports = resolver
	report(fmt.Sprintf("Loaded %d airports", resolver.Len()))

	report(fmt.Sprintf("Loading models from %s...", cfg.ModelDir))
	selector, err := estimator.LoadPairs(cfg.ModelDir)
	if err != nil {
		return nil, fmt.Errorf("loading models: %w", err)
	}
	selector.LeadDays = cfg.WeatherLeadDays
	a.Models = selector

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	source := weather.NewMeteostatSource(weather.MeteostatConfig{
		BaseURL:           cfg.Weather.BaseURL,
		APIKey:            cfg.Weather.APIKey,
		Timeout:           cfg.Weather.Timeout,
		RequestsPerSecond: cfg.Weather.RequestsPerSecond,
	})
	a.Weather = weather.NewClient(source, store, weather.Config{
		Retries:      cfg.Weather.Retries,
		RetryDelay:   cfg.Weather.RetryDelay,
		FetchTimeout: cfg.RequestTimeout,
	}, a.Metrics)

	a.Pipeline = pipeline.New(a.Airports, a.Weather, a.Models, pipeline.Options{
		RequestTimeout:  cfg.RequestTimeout,
		WeatherLeadDays: cfg.WeatherLeadDays,
		Metrics:         a.Metrics,
	})

	report("Ready")
	return a, nil
}

func (a *App) openStore(ctx context.Context) (cache.Store, error) {
	if a.Config.RedisURL == "" {
		return cache.NewMemoryStore(), nil
	}

	client, err := cache.Connect(ctx, a.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connecting weather cache: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	slog.Info("weather cache using redis", "addr", client.Options().Addr)
	return cache.NewRedisStore(client), nil
}

// Close releases external connections
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Sources returns the reference files named in cfg
func Sources(cfg *config.Config) airports.Sources {
	return airports.Sources{
		CoordinatesCSV: cfg.AirportsCSV,
		TypesCSV:       cfg.TypesCSV,
		Shapefile:      cfg.AirportsShapefile,
	}
}
