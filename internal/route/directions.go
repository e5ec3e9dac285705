// Package route turns a start/end place pair into a geocoded, labeled
// driving route, and provides the coarse weather-based route preview.
package route

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Deekshith1804/gnss2/internal/logger"
	"github.com/Deekshith1804/gnss2/internal/metrics"
	"github.com/Deekshith1804/gnss2/internal/models"
)

// DirectionsClient fetches driving-car routes from openrouteservice.
type DirectionsClient struct {
	client  *resty.Client
	log     *logger.Logger
	baseURL string
	apiKey  string
}

// NewDirectionsClient creates a directions client.
func NewDirectionsClient(baseURL, apiKey string, timeout time.Duration) *DirectionsClient {
	c := resty.New()
	c.SetTimeout(timeout)
	return &DirectionsClient{
		client:  c,
		log:     logger.WithComponent("directions"),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

// Fetch requests a route between two coordinates and returns the polyline
// with its summary converted to kilometers and minutes. A provider failure
// or an empty geometry is a descriptive error for the caller to display.
func (d *DirectionsClient) Fetch(ctx context.Context, start, end models.GeoPoint) (models.RoutePath, error) {
	body := directionsRequest{
		// ORS expects [lon, lat] pairs.
		Coordinates: [][]float64{
			{start.Lon, start.Lat},
			{end.Lon, end.Lat},
		},
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Authorization", d.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(d.baseURL + "/v2/directions/driving-car/geojson")
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("directions", "error").Inc()
		return models.RoutePath{}, fmt.Errorf("failed to fetch route: %w", err)
	}
	if resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("directions", "error").Inc()
		return models.RoutePath{}, fmt.Errorf("route API returned status %d", resp.StatusCode())
	}

	var data models.ORSRouteResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("directions", "error").Inc()
		return models.RoutePath{}, fmt.Errorf("failed to parse route response: %w", err)
	}
	if len(data.Features) == 0 {
		metrics.ExternalCallsTotal.WithLabelValues("directions", "empty").Inc()
		return models.RoutePath{}, fmt.Errorf("no route found between start and end")
	}
	metrics.ExternalCallsTotal.WithLabelValues("directions", "success").Inc()

	feat := data.Features[0]
	points := make([]models.GeoPoint, 0, len(feat.Geometry.Coordinates))
	for _, pair := range feat.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		points = append(points, models.GeoPoint{Lat: pair[1], Lon: pair[0]})
	}
	if len(points) == 0 {
		return models.RoutePath{}, fmt.Errorf("route response contained no geometry")
	}

	path := models.RoutePath{
		Points:      points,
		DistanceKM:  round2(feat.Properties.Summary.Distance / 1000),
		DurationMin: round2(feat.Properties.Summary.Duration / 60),
	}
	d.log.Debug("route fetched", map[string]interface{}{
		"points":   len(points),
		"km":       path.DistanceKM,
		"duration": path.DurationMin,
	})
	return path, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
