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

// kpCacheKey is the single cache key for the Kp history; the endpoint takes
// no parameters.
const kpCacheKey = "planetary-kp"

// KpFetcher fetches the NOAA SWPC planetary K-index history. Failures
// propagate; location mode has no fallback for geomagnetic data.
type KpFetcher struct {
	client *resty.Client
	cache  *cache.TTL[[]models.KpEntry]
	log    *logger.Logger
	url    string
}

// NewKpFetcher creates a Kp fetcher with its own client and cache.
func NewKpFetcher(url string, timeout, ttl time.Duration) *KpFetcher {
	return &KpFetcher{
		client: newClient(timeout),
		cache:  cache.New[[]models.KpEntry](ttl),
		log:    logger.WithComponent("kp"),
		url:    url,
	}
}

// FetchHistory returns the Kp time series, from cache when fresh.
func (f *KpFetcher) FetchHistory(ctx context.Context) ([]models.KpEntry, error) {
	if entries, ok := f.cache.Get(kpCacheKey); ok {
		metrics.CacheLookupsTotal.WithLabelValues("kp", "hit").Inc()
		return entries, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("kp", "miss").Inc()

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(f.url)
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("kp", "error").Inc()
		return nil, fmt.Errorf("failed to fetch NOAA Kp index: %w", err)
	}
	if resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("kp", "error").Inc()
		return nil, fmt.Errorf("NOAA Kp API returned status %d", resp.StatusCode())
	}

	var data []models.NOAAKpResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("kp", "error").Inc()
		return nil, fmt.Errorf("failed to parse NOAA Kp response: %w", err)
	}
	metrics.ExternalCallsTotal.WithLabelValues("kp", "success").Inc()

	entries := make([]models.KpEntry, 0, len(data))
	for _, rec := range data {
		ts, err := time.Parse("2006-01-02T15:04:05", rec.TimeTag)
		if err != nil {
			continue
		}
		kp := rec.KpIndex
		if rec.EstimatedKp > 0 {
			kp = rec.EstimatedKp
		}
		entries = append(entries, models.KpEntry{Time: ts.UTC(), Kp: kp})
	}
	f.log.Debug("kp history fetched", map[string]interface{}{"entries": len(entries)})

	f.cache.Put(kpCacheKey, entries)
	return entries, nil
}
