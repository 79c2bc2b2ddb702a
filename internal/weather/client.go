package weather

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ngmaloney/skycast/internal/cache"
	"github.com/ngmaloney/skycast/internal/metrics"
	"github.com/ngmaloney/skycast/internal/models"
)

const (
	defaultRetries      = 3
	defaultRetryDelay   = time.Second
	defaultFetchTimeout = time.Minute
)

// Config controls the retry policy of a Client
type Config struct {
	Retries      int           // extra attempts after the first; negative means 0
	RetryDelay   time.Duration // wait between failed attempts
	FetchTimeout time.Duration // bound on one shared round of attempts; 0 means 1m
}

// DefaultConfig returns 3 retries (4 attempts) one second apart
func DefaultConfig() Config {
	return Config{Retries: defaultRetries, RetryDelay: defaultRetryDelay, FetchTimeout: defaultFetchTimeout}
}

// Client looks up daily observations through a cache. It never returns an
// error: every failure ends in a cached NoData result, reported as ok=false.
type Client struct {
	source  Source
	store   cache.Store
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger
	group   singleflight.Group
}

// NewClient creates a Client. store is owned by the caller and outlives the
// client; m may be nil.
func NewClient(source Source, store cache.Store, cfg Config, m *metrics.Metrics) *Client {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	return &Client{
		source:  source,
		store:   store,
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "weather"),
	}
}

// Fetch returns the observation for a coordinate and day. ok is false when
// the provider had no data or kept failing; that outcome is cached too, so
// later calls for the same key make no remote calls. ok is also false when
// ctx ends first, but then nothing is cached.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, date time.Time) (models.WeatherObservation, bool) {
	key := cache.WeatherKey(lat, lon, date)

	if e, ok := c.lookup(ctx, key); ok {
		c.metrics.CacheLookup(true)
		return e.Observation, !e.NoData
	}
	c.metrics.CacheLookup(false)

	// Concurrent misses for the same key share one round of attempts. The
	// round runs detached from any single caller so one caller giving up
	// does not end it for the others.
	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.FetchTimeout)
		defer cancel()

		if e, ok := c.lookup(fetchCtx, key); ok {
			return e, nil
		}
		e, cacheable := c.fetchWithRetry(fetchCtx, lat, lon, date)
		if cacheable {
			if err := c.store.Put(fetchCtx, key, e); err != nil {
				c.logger.Warn("weather cache write failed", "key", key, "error", err)
			}
		}
		return e, nil
	})

	select {
	case res := <-ch:
		e := res.Val.(cache.Entry)
		return e.Observation, !e.NoData
	case <-ctx.Done():
		return models.WeatherObservation{}, false
	}
}

// FetchRoute fetches both ends of a route concurrently. ok is false when
// either end has no data.
func (c *Client) FetchRoute(ctx context.Context, origin, dest models.AirportRecord, date time.Time) (models.WeatherPair, bool) {
	var pair models.WeatherPair
	var originOK, destOK bool

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pair.Origin, originOK = c.Fetch(gCtx, origin.Latitude, origin.Longitude, date)
		return nil
	})
	g.Go(func() error {
		pair.Destination, destOK = c.Fetch(gCtx, dest.Latitude, dest.Longitude, date)
		return nil
	})
	_ = g.Wait()

	if !originOK || !destOK {
		return models.WeatherPair{}, false
	}
	return pair, true
}

func (c *Client) lookup(ctx context.Context, key string) (cache.Entry, bool) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("weather cache read failed", "key", key, "error", err)
		return cache.Entry{}, false
	}
	return e, ok
}

// fetchWithRetry makes up to Retries+1 attempts. An empty answer from the
// provider ends the attempts at once. cacheable is false when ctx ended or
// the local rate limit held the request back; neither says anything about
// the provider.
func (c *Client) fetchWithRetry(ctx context.Context, lat, lon float64, date time.Time) (e cache.Entry, cacheable bool) {
	attempts := c.cfg.Retries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		obs, err := c.source.DailyObservation(ctx, lat, lon, date)
		if err == nil {
			c.metrics.WeatherAttempt("ok")
			return cache.Entry{Observation: obs}, true
		}

		if errors.Is(err, ErrNoObservation) {
			c.metrics.WeatherAttempt("empty")
			c.logger.Info("no weather observation", "lat", lat, "lon", lon, "date", date.Format("2006-01-02"))
			return cache.NoDataEntry, true
		}

		if errors.Is(err, ErrThrottled) {
			c.metrics.WeatherAttempt("throttled")
			c.logger.Warn("weather request throttled", "lat", lat, "lon", lon, "error", err)
			return cache.NoDataEntry, false
		}

		c.metrics.WeatherAttempt("error")
		if ctx.Err() != nil {
			return cache.NoDataEntry, false
		}
		c.logger.Warn("weather fetch failed", "attempt", attempt, "of", attempts, "error", err)

		if attempt == attempts {
			break
		}
		select {
		case <-time.After(c.cfg.RetryDelay):
		case <-ctx.Done():
			return cache.NoDataEntry, false
		}
	}

	return cache.NoDataEntry, true
}
