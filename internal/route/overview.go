package route

import (
	"context"
	"math"

	"golang.org/x/exp/rand"

	"github.com/Deekshith1804/gnss2/internal/fetchers"
	"github.com/Deekshith1804/gnss2/internal/geocode"
	"github.com/Deekshith1804/gnss2/internal/models"
	"github.com/Deekshith1804/gnss2/internal/outage"
)

// downsampleStep bounds serial latency: the preview walks every third route
// point because each one costs a blocking weather lookup.
const downsampleStep = 3

// Overview produces the coarse route preview: for a thinned set of route
// points it combines near-live cloud cover with random TEC/Kp draws and
// applies the preview rule profile. Unlike location mode, a weather failure
// here substitutes a uniformly random cloud value and keeps going.
type Overview struct {
	weather  *fetchers.WeatherFetcher
	geocoder *geocode.Client
	seed     uint64
}

// NewOverview creates a route preview helper.
func NewOverview(weather *fetchers.WeatherFetcher, geocoder *geocode.Client, seed uint64) *Overview {
	return &Overview{
		weather:  weather,
		geocoder: geocoder,
		seed:     seed,
	}
}

// Predict evaluates the preview rule at every third route point, serially.
// Each call draws from its own freshly seeded source, so concurrent previews
// never share RNG state and repeated previews of one route agree.
func (o *Overview) Predict(ctx context.Context, points []models.GeoPoint) []models.RoutePreviewPoint {
	rnd := rand.New(rand.NewSource(o.seed))
	var results []models.RoutePreviewPoint
	for i := 0; i < len(points); i += downsampleStep {
		pt := points[i]

		cloud := o.cloudCover(ctx, rnd, pt)
		tec := math.Round((1+rnd.Float64()*34)*100) / 100
		kp := 1 + rnd.Intn(9)

		sample := models.ForecastSample{Cloud: cloud, TEC: tec, Kp: kp}
		results = append(results, models.RoutePreviewPoint{
			Point:  pt,
			Label:  o.geocoder.Reverse(ctx, pt.Lat, pt.Lon),
			Cloud:  cloud,
			TEC:    tec,
			Kp:     kp,
			Outage: outage.RoutePreviewProfile.Evaluate(sample),
		})
	}
	return results
}

// cloudCover takes the first upcoming forecast slot's cloud value, or a
// random one when the weather service is unavailable.
func (o *Overview) cloudCover(ctx context.Context, rnd *rand.Rand, pt models.GeoPoint) float64 {
	entries, err := o.weather.FetchForecast(ctx, pt.Lat, pt.Lon)
	if err != nil || len(entries) == 0 {
		return float64(rnd.Intn(101))
	}
	return entries[0].Cloud
}
