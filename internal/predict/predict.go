// Package predict orchestrates location mode: resolve the place, expose the
// forecast times, then evaluate the outage rule and the trained forest over
// a fresh simulated population. The prediction itself is pure given its
// inputs; all network access happens up front in Lookup.
package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/Deekshith1804/gnss2/internal/classifier"
	"github.com/Deekshith1804/gnss2/internal/fetchers"
	"github.com/Deekshith1804/gnss2/internal/geocode"
	"github.com/Deekshith1804/gnss2/internal/logger"
	"github.com/Deekshith1804/gnss2/internal/metrics"
	"github.com/Deekshith1804/gnss2/internal/models"
	"github.com/Deekshith1804/gnss2/internal/outage"
	"github.com/Deekshith1804/gnss2/internal/simulate"
)

// Population size bounds exposed to the UI slider.
const (
	MinPoints = 500
	MaxPoints = 5000
)

// Service runs location-mode predictions.
type Service struct {
	weather  *fetchers.WeatherFetcher
	kp       *fetchers.KpFetcher
	geocoder *geocode.Client
	log      *logger.Logger

	trainingPoints int
	trees          int
	seed           uint64
}

// NewService creates a prediction service.
func NewService(weather *fetchers.WeatherFetcher, kp *fetchers.KpFetcher, geocoder *geocode.Client,
	trainingPoints, trees int, seed uint64) *Service {
	return &Service{
		weather:        weather,
		kp:             kp,
		geocoder:       geocoder,
		log:            logger.WithComponent("predict"),
		trainingPoints: trainingPoints,
		trees:          trees,
		seed:           seed,
	}
}

// Lookup resolves a place name and fetches the forecast time series plus
// the Kp history for it. Geocoding misses surface as the not-found
// sentinel; weather or Kp failures fail the whole lookup so a prediction
// never proceeds on missing data.
func (s *Service) Lookup(ctx context.Context, place string) (models.Place, []models.ForecastEntry, []models.KpEntry, error) {
	resolved, err := s.geocoder.Search(ctx, place)
	if err != nil {
		return models.Place{}, nil, nil, err
	}

	forecast, err := s.weather.FetchForecast(ctx, resolved.Point.Lat, resolved.Point.Lon)
	if err != nil {
		return models.Place{}, nil, nil, fmt.Errorf("weather lookup for %q: %w", resolved.Label, err)
	}

	history, err := s.kp.FetchHistory(ctx)
	if err != nil {
		return models.Place{}, nil, nil, fmt.Errorf("kp lookup: %w", err)
	}

	return resolved, forecast, history, nil
}

// Predict evaluates the outage rule at the selected time and trains the
// decision forest on a fresh rule-labeled population, then applies it to a
// user-sized population for the heatmap. Both populations derive from the
// same (place, time) seed, so repeated requests redraw identically.
func (s *Service) Predict(place models.Place, t time.Time, n int) (*models.Prediction, error) {
	if n < MinPoints || n > MaxPoints {
		return nil, fmt.Errorf("population size %d outside [%d, %d]", n, MinPoints, MaxPoints)
	}
	start := time.Now()

	sample := simulate.FixedValues(place.Point.Lat, place.Point.Lon, t)
	ruled := outage.LocationProfile.Evaluate(sample)

	train := simulate.Population(s.trainingPoints, place.Point, t)
	for i := range train.Samples {
		train.Samples[i].Outage = outage.LocationProfile.Evaluate(train.Samples[i].Sample)
	}

	forest, err := classifier.Train(train.Samples, s.trees, s.seed)
	if err != nil {
		return nil, fmt.Errorf("training outage classifier: %w", err)
	}

	// Diagnostics are computed on the training population itself. This is
	// rule interpolation, not held-out evaluation, and is labeled as such
	// in the UI.
	truth := make([]bool, len(train.Samples))
	pred := make([]bool, len(train.Samples))
	for i, ts := range train.Samples {
		truth[i] = ts.Outage
		pred[i] = forest.Predict(ts.Sample)
	}
	report := classifier.Report(truth, pred)

	population := simulate.Population(n, place.Point, t)
	for i := range population.Samples {
		population.Samples[i].Outage = outage.LocationProfile.Evaluate(population.Samples[i].Sample)
		population.Samples[i].Predict = forest.Predict(population.Samples[i].Sample)
	}

	metrics.PredictionsTotal.WithLabelValues("location").Inc()
	metrics.PredictionDuration.WithLabelValues("location").Observe(time.Since(start).Seconds())
	s.log.Info("prediction complete", map[string]interface{}{
		"place":   place.Label,
		"points":  n,
		"outage":  ruled,
		"flagged": population.OutageCount(),
	})

	return &models.Prediction{
		Place:      place,
		Time:       t,
		Sample:     sample,
		Outage:     ruled,
		Population: population,
		Report:     report,
	}, nil
}
