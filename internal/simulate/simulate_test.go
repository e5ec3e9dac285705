package simulate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deekshith1804/gnss2/internal/models"
)

func TestLocationSeed(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want uint64
	}{
		{
			// trunc(12971.6 + 77594.6 + 1700000000) mod 100000
			name: "positive coordinates",
			lat:  12.9716,
			lon:  77.5946,
			want: 90566,
		},
		{
			name: "origin",
			lat:  0,
			lon:  0,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocationSeed(tt.lat, tt.lon, at))
		})
	}
}

func TestLocationSeedNonNegative(t *testing.T) {
	// Large negative coordinates with an early epoch force a negative raw
	// value; the seed must still land in [0, SeedRange).
	seed := LocationSeed(-89.9, -179.9, time.Unix(-1_000_000, 0))
	assert.Less(t, seed, uint64(SeedRange))
}

func TestRouteSeedVariesByIndex(t *testing.T) {
	a := RouteSeed(12.9716, 77.5946, 1)
	b := RouteSeed(12.9716, 77.5946, 2)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, uint64(SeedRange))
	assert.Less(t, b, uint64(SeedRange))
}

func TestDrawDeterministic(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	first := Draw(12345, at)
	second := Draw(12345, at)
	assert.Equal(t, first, second)

	other := Draw(12346, at)
	assert.NotEqual(t, first, other)
}

func TestDrawRanges(t *testing.T) {
	for seed := uint64(0); seed < 500; seed++ {
		s := Draw(seed, time.Time{})
		assert.GreaterOrEqual(t, s.Cloud, 0.0)
		assert.LessOrEqual(t, s.Cloud, 100.0)
		assert.GreaterOrEqual(t, s.Rain, 0.0)
		assert.GreaterOrEqual(t, s.TEC, 20.0)
		assert.LessOrEqual(t, s.TEC, 80.0)
		assert.GreaterOrEqual(t, s.Kp, 0)
		assert.LessOrEqual(t, s.Kp, 9)
	}
}

func TestFixedValuesReproducible(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	first := FixedValues(12.9716, 77.5946, at)
	second := FixedValues(12.9716, 77.5946, at)
	assert.Equal(t, first, second)

	// A different forecast time shifts the seed and the draws with it.
	later := FixedValues(12.9716, 77.5946, at.Add(3*time.Hour))
	assert.NotEqual(t, first.Cloud, later.Cloud)
}

func TestPopulation(t *testing.T) {
	center := models.GeoPoint{Lat: 12.9716, Lon: 77.5946}
	at := time.Unix(1_700_000_000, 0)

	pop := Population(1000, center, at)
	require.Len(t, pop.Samples, 1000)
	assert.Equal(t, center, pop.Center)

	for _, s := range pop.Samples {
		assert.InDelta(t, center.Lat, s.Point.Lat, ScatterDegrees)
		assert.InDelta(t, center.Lon, s.Point.Lon, ScatterDegrees)
		assert.GreaterOrEqual(t, s.Sample.Cloud, 0.0)
		assert.LessOrEqual(t, s.Sample.Cloud, 100.0)
		assert.False(t, s.Outage)
		assert.False(t, s.Predict)
	}
}

func TestPopulationReproducible(t *testing.T) {
	center := models.GeoPoint{Lat: 28.6139, Lon: 77.209}
	at := time.Unix(1_700_000_000, 0)

	first := Population(750, center, at)
	second := Population(750, center, at)
	assert.Equal(t, first, second)
}
