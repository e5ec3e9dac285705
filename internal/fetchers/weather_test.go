package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"cod": "200",
	"list": [
		{"dt": 1700000000, "clouds": {"all": 75.0}, "rain": {"3h": 2.5}},
		{"dt": 1700010800, "clouds": {"all": 40.0}},
		{"dt": 1700021600, "clouds": {"all": 10.0}, "rain": {"3h": 0.2}}
	],
	"city": {"name": "Bengaluru", "country": "IN"}
}`

func TestFetchForecast(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"lat":   r.URL.Query().Get("lat"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	f := NewWeatherFetcher(srv.URL, "test-key", 5*time.Second, 10*time.Minute)
	entries, err := f.FetchForecast(context.Background(), 12.9716, 77.5946)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "test-key", gotQuery["appid"])
	assert.Equal(t, "metric", gotQuery["units"])

	assert.Equal(t, time.Unix(1700000000, 0).UTC(), entries[0].Time)
	assert.Equal(t, 75.0, entries[0].Cloud)
	assert.Equal(t, 2.5, entries[0].Rain)

	// Slots without a rain block default to zero accumulation.
	assert.Equal(t, 0.0, entries[1].Rain)
}

func TestFetchForecastCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	f := NewWeatherFetcher(srv.URL, "test-key", 5*time.Second, 10*time.Minute)

	_, err := f.FetchForecast(context.Background(), 12.9716, 77.5946)
	require.NoError(t, err)
	_, err = f.FetchForecast(context.Background(), 12.9716, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second fetch for the same coordinate should hit the cache")

	// A different coordinate is a different cache key.
	_, err = f.FetchForecast(context.Background(), 28.6139, 77.209)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchForecastServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewWeatherFetcher(srv.URL, "test-key", 5*time.Second, 10*time.Minute)
	_, err := f.FetchForecast(context.Background(), 12.9716, 77.5946)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchForecastBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	f := NewWeatherFetcher(srv.URL, "test-key", 5*time.Second, 10*time.Minute)
	_, err := f.FetchForecast(context.Background(), 12.9716, 77.5946)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse weather response")
}
