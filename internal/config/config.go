// Package config loads SkyCast settings from an optional YAML file and
// SKYCAST_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ngmaloney/skycast/internal/database"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "SKYCAST"

// WeatherConfig configures the observation provider and retry policy
type WeatherConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Retries           int           `mapstructure:"retries"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// Config holds every setting shared by the SkyCast binaries
type Config struct {
	HTTPPort          int           `mapstructure:"http_port"`
	DBPath            string        `mapstructure:"db_path"`
	ModelDir          string        `mapstructure:"model_dir"`
	AirportsCSV       string        `mapstructure:"airports_csv"`
	TypesCSV          string        `mapstructure:"types_csv"`
	AirportsShapefile string        `mapstructure:"airports_shapefile"`
	RedisURL          string        `mapstructure:"redis_url"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	WeatherLeadDays   int           `mapstructure:"weather_lead_days"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	Weather           WeatherConfig `mapstructure:"weather"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", 8090)
	v.SetDefault("db_path", database.DBPath())
	v.SetDefault("model_dir", "model")
	v.SetDefault("airports_csv", "data/airports_info_.csv")
	v.SetDefault("types_csv", "data/type_airport.csv")
	v.SetDefault("airports_shapefile", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("weather_lead_days", 7)
	v.SetDefault("request_timeout", "30s")

	v.SetDefault("weather.base_url", "https://meteostat.p.rapidapi.com")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.retries", 3)
	v.SetDefault("weather.retry_delay", "1s")
	v.SetDefault("weather.timeout", "10s")
	v.SetDefault("weather.requests_per_second", 2)
}

// Load reads configPath when it is non-empty, then applies environment
// overrides. Nested keys map to variables with "_" in place of ".", so
// weather.retries is SKYCAST_WEATHER_RETRIES.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The provider key also answers to its historical name
	if err := v.BindEnv("weather.api_key", EnvPrefix+"_WEATHER_API_KEY", EnvPrefix+"_METEOSTAT_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("http_port %d out of range", c.HTTPPort)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.ModelDir == "" {
		return fmt.Errorf("model_dir is required")
	}
	if c.WeatherLeadDays <= 0 {
		return fmt.Errorf("weather_lead_days must be positive, got %d", c.WeatherLeadDays)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Weather.Retries < 0 {
		return fmt.Errorf("weather.retries must not be negative, got %d", c.Weather.Retries)
	}
	if c.Weather.RetryDelay < 0 {
		return fmt.Errorf("weather.retry_delay must not be negative, got %s", c.Weather.RetryDelay)
	}
	if c.Weather.RequestsPerSecond < 0 {
		return fmt.Errorf("weather.requests_per_second must not be negative, got %v", c.Weather.RequestsPerSecond)
	}
	return nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds a text or JSON logger writing to w at the configured level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}
