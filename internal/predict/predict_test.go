package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deekshith1804/gnss2/internal/fetchers"
	"github.com/Deekshith1804/gnss2/internal/geocode"
	"github.com/Deekshith1804/gnss2/internal/models"
)

func testService(t *testing.T, weatherStatus int) (*Service, func()) {
	t.Helper()

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if weatherStatus != http.StatusOK {
			http.Error(w, "weather down", weatherStatus)
			return
		}
		json.NewEncoder(w).Encode(models.OWMForecastResponse{
			List: []models.OWMForecastSlot{
				{Dt: 1700000000, Clouds: models.OWMClouds{All: 60}, Rain: models.OWMRain{ThreeHour: 0.4}},
				{Dt: 1700010800, Clouds: models.OWMClouds{All: 75}},
			},
		})
	}))
	kpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.NOAAKpResponse{
			{TimeTag: "2026-08-25T00:00:00", KpIndex: 3, EstimatedKp: 3.2},
		})
	}))
	orsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("text") == "Atlantis" || r.URL.Query().Get("text") == "Atlantis, India" {
			json.NewEncoder(w).Encode(models.ORSGeocodeResponse{})
			return
		}
		json.NewEncoder(w).Encode(models.ORSGeocodeResponse{
			Features: []models.ORSGeocodeFeature{{
				Geometry:   models.ORSPointGeometry{Coordinates: []float64{77.5946, 12.9716}},
				Properties: models.ORSFeatureProperties{Label: "Bengaluru, KA, India"},
			}},
		})
	}))

	weather := fetchers.NewWeatherFetcher(weatherSrv.URL, "test-key", 5*time.Second, 10*time.Minute)
	kp := fetchers.NewKpFetcher(kpSrv.URL, 5*time.Second, time.Hour)
	geocoder := geocode.New(orsSrv.URL, "test-key", "India", "IN", 5,
		5*time.Second, 2*time.Second, 10*time.Minute)

	svc := NewService(weather, kp, geocoder, 1500, 25, 42)
	cleanup := func() {
		weatherSrv.Close()
		kpSrv.Close()
		orsSrv.Close()
	}
	return svc, cleanup
}

func TestLookup(t *testing.T) {
	svc, cleanup := testService(t, http.StatusOK)
	defer cleanup()

	place, forecast, history, err := svc.Lookup(context.Background(), "Bengaluru")
	require.NoError(t, err)

	assert.Equal(t, "Bengaluru, KA, India", place.Label)
	assert.Equal(t, 12.9716, place.Point.Lat)
	require.Len(t, forecast, 2)
	require.Len(t, history, 1)
	assert.Equal(t, 3.2, history[0].Kp)
}

func TestLookupPlaceNotFound(t *testing.T) {
	svc, cleanup := testService(t, http.StatusOK)
	defer cleanup()

	_, _, _, err := svc.Lookup(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, geocode.ErrPlaceNotFound)
}

func TestLookupWeatherFailureFailsFast(t *testing.T) {
	svc, cleanup := testService(t, http.StatusBadGateway)
	defer cleanup()

	_, _, _, err := svc.Lookup(context.Background(), "Bengaluru")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather lookup")
}

func TestPredict(t *testing.T) {
	svc, cleanup := testService(t, http.StatusOK)
	defer cleanup()

	place := models.Place{
		Point: models.GeoPoint{Lat: 12.9716, Lon: 77.5946},
		Label: "Bengaluru, KA, India",
	}
	at := time.Unix(1_700_000_000, 0)

	p, err := svc.Predict(place, at, 800)
	require.NoError(t, err)

	assert.Equal(t, place, p.Place)
	assert.Len(t, p.Population.Samples, 800)
	assert.Contains(t, p.Report, "precision")
	assert.Contains(t, p.Report, "accuracy")
	assert.Equal(t, at, p.Time)
}

func TestPredictReproducible(t *testing.T) {
	svc, cleanup := testService(t, http.StatusOK)
	defer cleanup()

	place := models.Place{Point: models.GeoPoint{Lat: 12.9716, Lon: 77.5946}}
	at := time.Unix(1_700_000_000, 0)

	first, err := svc.Predict(place, at, 600)
	require.NoError(t, err)
	second, err := svc.Predict(place, at, 600)
	require.NoError(t, err)

	assert.Equal(t, first.Sample, second.Sample)
	assert.Equal(t, first.Outage, second.Outage)
	assert.Equal(t, first.Population, second.Population)
	assert.Equal(t, first.Report, second.Report)
}

func TestPredictPointBounds(t *testing.T) {
	svc, cleanup := testService(t, http.StatusOK)
	defer cleanup()

	place := models.Place{Point: models.GeoPoint{Lat: 12.9716, Lon: 77.5946}}
	at := time.Unix(1_700_000_000, 0)

	_, err := svc.Predict(place, at, MinPoints-1)
	assert.Error(t, err)
	_, err = svc.Predict(place, at, MaxPoints+1)
	assert.Error(t, err)

	_, err = svc.Predict(place, at, MinPoints)
	assert.NoError(t, err)
}
