package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Deekshith1804/gnss2/internal/cache"
	"github.com/Deekshith1804/gnss2/internal/logger"
	"github.com/Deekshith1804/gnss2/internal/metrics"
	"github.com/Deekshith1804/gnss2/internal/models"
)

// WeatherFetcher fetches the 3-hour forecast time series from OpenWeather.
// Successful responses are cached for the configured window keyed by the
// request coordinates. Failures propagate to the caller; the route-overview
// helper is the one call site that substitutes a fallback.
type WeatherFetcher struct {
	client *resty.Client
	cache  *cache.TTL[[]models.ForecastEntry]
	log    *logger.Logger
	apiKey string
	url    string
}

// NewWeatherFetcher creates a weather fetcher with its own client and cache.
func NewWeatherFetcher(url, apiKey string, timeout, ttl time.Duration) *WeatherFetcher {
	return &WeatherFetcher{
		client: newClient(timeout),
		cache:  cache.New[[]models.ForecastEntry](ttl),
		log:    logger.WithComponent("weather"),
		apiKey: apiKey,
		url:    url,
	}
}

// FetchForecast returns the forecast entries for a coordinate, from cache
// when fresh. Rain accumulation defaults to zero when the slot has none.
func (f *WeatherFetcher) FetchForecast(ctx context.Context, lat, lon float64) ([]models.ForecastEntry, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if entries, ok := f.cache.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("weather", "hit").Inc()
		return entries, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("weather", "miss").Inc()

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   fmt.Sprintf("%f", lat),
			"lon":   fmt.Sprintf("%f", lon),
			"appid": f.apiKey,
			"units": "metric",
		}).
		SetHeader("Accept", "application/json").
		Get(f.url)
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("failed to fetch weather forecast: %w", err)
	}
	if resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode())
	}

	var data models.OWMForecastResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}
	metrics.ExternalCallsTotal.WithLabelValues("weather", "success").Inc()

	entries := make([]models.ForecastEntry, 0, len(data.List))
	for _, slot := range data.List {
		entries = append(entries, models.ForecastEntry{
			Time:  time.Unix(slot.Dt, 0).UTC(),
			Cloud: slot.Clouds.All,
			Rain:  slot.Rain.ThreeHour,
		})
	}
	f.log.Debug("forecast fetched", map[string]interface{}{"entries": len(entries), "key": key})

	f.cache.Put(key, entries)
	return entries, nil
}
