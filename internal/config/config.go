package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the GNSS outage dashboard. It is
// constructed once at startup and passed explicitly to every component that
// needs it; nothing reads the environment after Load returns.
type Config struct {
	// Server configuration
	Port        string `env:"PORT,default=8080"`
	Environment string `env:"ENVIRONMENT,default=development"`

	// API keys. The weather key is needed for location mode; the ORS key
	// covers geocoding, autocomplete, and directions. A missing ORS key
	// disables route mode with a visible message instead of crashing.
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`
	ORSAPIKey         string `env:"ORS_API_KEY"`

	// Data source URLs
	OWMForecastURL string `env:"OWM_FORECAST_URL,default=https://api.openweathermap.org/data/2.5/forecast"`
	NOAAKpURL      string `env:"NOAA_KP_URL,default=https://services.swpc.noaa.gov/json/planetary_k_index_1m.json"`
	ORSBaseURL     string `env:"ORS_BASE_URL,default=https://api.openrouteservice.org"`
	SIDCRSSURL     string `env:"SIDC_RSS_URL,default=https://www.sidc.be/products/meu"`

	// Adapter timeouts. All external calls block until they return, time
	// out, or fail; there is no cancellation and no retry.
	WeatherTimeout time.Duration `env:"WEATHER_TIMEOUT,default=10s"`
	KpTimeout      time.Duration `env:"KP_TIMEOUT,default=5s"`
	GeocodeTimeout time.Duration `env:"GEOCODE_TIMEOUT,default=10s"`
	SuggestTimeout time.Duration `env:"SUGGEST_TIMEOUT,default=5s"`
	RouteTimeout   time.Duration `env:"ROUTE_TIMEOUT,default=10s"`

	// Cache freshness windows
	WeatherCacheTTL time.Duration `env:"WEATHER_CACHE_TTL,default=10m"`
	KpCacheTTL      time.Duration `env:"KP_CACHE_TTL,default=60m"`
	GeocodeCacheTTL time.Duration `env:"GEOCODE_CACHE_TTL,default=10m"`

	// Simulation and training knobs
	TrainingPoints int    `env:"TRAINING_POINTS,default=3000"`
	ForestTrees    int    `env:"FOREST_TREES,default=100"`
	TrainingSeed   uint64 `env:"TRAINING_SEED,default=42"`

	// Country qualifier appended to the once-only secondary geocoding
	// attempt when the raw query finds nothing.
	GeocodeQualifier string `env:"GEOCODE_QUALIFIER,default=India"`

	// Autocomplete country filter and result count
	SuggestCountry string `env:"SUGGEST_COUNTRY,default=IN"`
	SuggestSize    int    `env:"SUGGEST_SIZE,default=5"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.TrainingPoints <= 0 {
		return nil, fmt.Errorf("TRAINING_POINTS must be positive, got %d", cfg.TrainingPoints)
	}
	return &cfg, nil
}

// RouteModeEnabled reports whether the routing/geocoding provider key is
// configured. Without it the route feature is disabled, not broken.
func (c *Config) RouteModeEnabled() bool {
	return c.ORSAPIKey != ""
}
