// Package geocode wraps the openrouteservice geocoding endpoints: forward
// search, autocomplete suggestions, and reverse lookup. Failure behavior is
// deliberately different per call, matching what the UI can tolerate at
// each call site: search reports not-found, reverse falls back to a
// coordinate string, autocomplete degrades to no suggestions.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Deekshith1804/gnss2/internal/cache"
	"github.com/Deekshith1804/gnss2/internal/logger"
	"github.com/Deekshith1804/gnss2/internal/metrics"
	"github.com/Deekshith1804/gnss2/internal/models"
)

// ErrPlaceNotFound is the not-found sentinel for forward geocoding: the
// request was valid but no place matched, or the provider timed out.
// Callers must branch on it instead of assuming success.
var ErrPlaceNotFound = errors.New("geocode: place not found")

// Client talks to the ORS geocoding API.
type Client struct {
	client  *resty.Client
	cache   *cache.TTL[models.Place]
	log     *logger.Logger
	baseURL string
	apiKey  string

	// qualifier is appended to the once-only secondary search attempt.
	qualifier string

	suggestCountry string
	suggestSize    int
	suggestTimeout time.Duration
}

// New creates a geocoding client. Search results are cached for ttl keyed
// by the raw query string.
func New(baseURL, apiKey, qualifier, suggestCountry string, suggestSize int,
	timeout, suggestTimeout, ttl time.Duration) *Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return &Client{
		client:         c,
		cache:          cache.New[models.Place](ttl),
		log:            logger.WithComponent("geocode"),
		baseURL:        baseURL,
		apiKey:         apiKey,
		qualifier:      qualifier,
		suggestCountry: suggestCountry,
		suggestSize:    suggestSize,
		suggestTimeout: suggestTimeout,
	}
}

// Search resolves a place name to coordinates and a canonical label. The
// raw query is tried first; if it yields nothing, one more attempt with the
// country qualifier appended. Exhausting both returns ErrPlaceNotFound.
func (c *Client) Search(ctx context.Context, place string) (models.Place, error) {
	if cached, ok := c.cache.Get(place); ok {
		metrics.CacheLookupsTotal.WithLabelValues("geocode", "hit").Inc()
		return cached, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("geocode", "miss").Inc()

	attempts := []string{place}
	if c.qualifier != "" {
		attempts = append(attempts, place+", "+c.qualifier)
	}
	for _, query := range attempts {
		found, ok := c.searchOnce(ctx, query)
		if ok {
			c.cache.Put(place, found)
			return found, nil
		}
	}
	return models.Place{}, ErrPlaceNotFound
}

func (c *Client) searchOnce(ctx context.Context, query string) (models.Place, bool) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": c.apiKey,
			"text":    query,
			"size":    "1",
		}).
		Get(c.baseURL + "/geocode/search")
	if err != nil || resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("geocode", "error").Inc()
		return models.Place{}, false
	}

	var data models.ORSGeocodeResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil || len(data.Features) == 0 {
		metrics.ExternalCallsTotal.WithLabelValues("geocode", "empty").Inc()
		return models.Place{}, false
	}
	metrics.ExternalCallsTotal.WithLabelValues("geocode", "success").Inc()

	f := data.Features[0]
	if len(f.Geometry.Coordinates) < 2 {
		return models.Place{}, false
	}
	return models.Place{
		// ORS returns [lon, lat]
		Point: models.GeoPoint{Lat: f.Geometry.Coordinates[1], Lon: f.Geometry.Coordinates[0]},
		Label: f.Properties.Label,
	}, true
}

// Reverse resolves coordinates to a place label. On any failure it falls
// back to a formatted coordinate string so this call never surfaces a hard
// error in the UI.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("%.4f, %.4f", lat, lon)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":   c.apiKey,
			"point.lat": strconv.FormatFloat(lat, 'f', 6, 64),
			"point.lon": strconv.FormatFloat(lon, 'f', 6, 64),
			"size":      "1",
		}).
		Get(c.baseURL + "/geocode/reverse")
	if err != nil || resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("geocode", "error").Inc()
		return fallback
	}

	var data models.ORSGeocodeResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil || len(data.Features) == 0 {
		return fallback
	}
	if label := data.Features[0].Properties.Label; label != "" {
		return label
	}
	return fallback
}

// Suggest returns autocomplete labels for a partial query. A missing API
// key, an empty query, or any provider failure yields no suggestions.
func (c *Client) Suggest(ctx context.Context, query string) []string {
	if query == "" || c.apiKey == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.suggestTimeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":          c.apiKey,
			"text":             query,
			"boundary.country": c.suggestCountry,
			"size":             strconv.Itoa(c.suggestSize),
		}).
		Get(c.baseURL + "/geocode/autocomplete")
	if err != nil || resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("geocode", "error").Inc()
		return nil
	}

	var data models.ORSGeocodeResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil
	}
	labels := make([]string, 0, len(data.Features))
	for _, f := range data.Features {
		if f.Properties.Label != "" {
			labels = append(labels, f.Properties.Label)
		}
	}
	return labels
}
