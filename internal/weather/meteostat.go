package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ngmaloney/skycast/internal/models"
)

// MeteostatSource implements Source using the Meteostat JSON API
type MeteostatSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// MeteostatConfig configures a MeteostatSource
type MeteostatConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
}

// NewMeteostatSource creates a new Meteostat client
func NewMeteostatSource(cfg MeteostatConfig) *MeteostatSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://meteostat.p.rapidapi.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &MeteostatSource{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: "SkyCast/1.0 (github.com/ngmaloney/skycast)",
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// DailyObservation retrieves the daily aggregate for one coordinate and day
func (s *MeteostatSource) DailyObservation(ctx context.Context, lat, lon float64, date time.Time) (models.WeatherObservation, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return models.WeatherObservation{}, fmt.Errorf("%w: %w", ErrThrottled, err)
	}

	day := date.Format("2006-01-02")
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("start", day)
	params.Set("end", day)
	reqURL := fmt.Sprintf("%s/point/daily?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return models.WeatherObservation{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", s.apiKey)
		if u, err := url.Parse(s.baseURL); err == nil {
			req.Header.Set("X-RapidAPI-Host", u.Host)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.WeatherObservation{}, fmt.Errorf("fetching daily observation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.WeatherObservation{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var dailyResp dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&dailyResp); err != nil {
		return models.WeatherObservation{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(dailyResp.Data) == 0 {
		return models.WeatherObservation{}, ErrNoObservation
	}

	d := dailyResp.Data[0]
	return models.ObservationFromNullable(d.Tavg, d.Tmin, d.Tmax, d.Prcp, d.Wspd, d.Snow), nil
}

// Internal types for Meteostat API responses

type dailyResponse struct {
	Data []dailyRecord `json:"data"`
}

// Any of the measurements may be null in the response
type dailyRecord struct {
	Date string   `json:"date"`
	Tavg *float64 `json:"tavg"`
	Tmin *float64 `json:"tmin"`
	Tmax *float64 `json:"tmax"`
	Prcp *float64 `json:"prcp"`
	Snow *float64 `json:"snow"`
	Wdir *float64 `json:"wdir"`
	Wspd *float64 `json:"wspd"`
	Wpgt *float64 `json:"wpgt"`
	Pres *float64 `json:"pres"`
	Tsun *float64 `json:"tsun"`
}
