// Package simulate generates reproducible synthetic GNSS feature vectors.
// All randomness flows through a single seeded source per request, so a
// given (location, time) pair always produces the same draws in the same
// order. The values are not physically realistic and are not meant to be.
package simulate

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Deekshith1804/gnss2/internal/models"
)

// Feature draw parameters. Kept as package constants so the single-sample
// and population paths cannot drift apart.
const (
	cloudMin = 0.0
	cloudMax = 100.0
	rainMean = 2.0 // exponential scale, mm
	tecMin   = 20.0
	tecMax   = 80.0
	kpStates = 10 // integer Kp in [0, 9]

	// ScatterDegrees is the half-width of the uniform lat/lon scatter
	// around a population center.
	ScatterDegrees = 5.0
)

// rig bundles the seeded distributions drawing from one shared source.
type rig struct {
	src   rand.Source
	rnd   *rand.Rand
	cloud distuv.Uniform
	rain  distuv.Exponential
	tec   distuv.Uniform
}

func newRig(seed uint64) *rig {
	src := rand.NewSource(seed)
	return &rig{
		src:   src,
		rnd:   rand.New(src),
		cloud: distuv.Uniform{Min: cloudMin, Max: cloudMax, Src: src},
		rain:  distuv.Exponential{Rate: 1 / rainMean, Src: src},
		tec:   distuv.Uniform{Min: tecMin, Max: tecMax, Src: src},
	}
}

// sample draws one feature vector. Draw order is fixed: cloud, rain, TEC, Kp.
func (r *rig) sample(t time.Time) models.ForecastSample {
	return models.ForecastSample{
		Time:  t,
		Cloud: r.cloud.Rand(),
		Rain:  r.rain.Rand(),
		TEC:   r.tec.Rand(),
		Kp:    r.rnd.Intn(kpStates),
	}
}

// Draw produces the single deterministic feature vector for a seed.
func Draw(seed uint64, t time.Time) models.ForecastSample {
	return newRig(seed).sample(t)
}

// FixedValues produces the deterministic feature vector for a location and
// forecast time, used for the headline single-point prediction.
func FixedValues(lat, lon float64, t time.Time) models.ForecastSample {
	return Draw(LocationSeed(lat, lon, t), t)
}

// Population scatters n samples uniformly within ±ScatterDegrees of the
// center. Draws are column-wise (all latitudes, then longitudes, then each
// feature in turn) so the stream consumed from the seeded source matches
// across repeated calls with the same inputs. Labels are left unset.
func Population(n int, center models.GeoPoint, t time.Time) models.SimulatedPopulation {
	r := newRig(LocationSeed(center.Lat, center.Lon, t))

	latDist := distuv.Uniform{Min: center.Lat - ScatterDegrees, Max: center.Lat + ScatterDegrees, Src: r.src}
	lonDist := distuv.Uniform{Min: center.Lon - ScatterDegrees, Max: center.Lon + ScatterDegrees, Src: r.src}

	lats := make([]float64, n)
	lons := make([]float64, n)
	clouds := make([]float64, n)
	rains := make([]float64, n)
	tecs := make([]float64, n)
	kps := make([]int, n)

	for i := range lats {
		lats[i] = latDist.Rand()
	}
	for i := range lons {
		lons[i] = lonDist.Rand()
	}
	for i := range clouds {
		clouds[i] = r.cloud.Rand()
	}
	for i := range rains {
		rains[i] = r.rain.Rand()
	}
	for i := range tecs {
		tecs[i] = r.tec.Rand()
	}
	for i := range kps {
		kps[i] = r.rnd.Intn(kpStates)
	}

	pop := models.SimulatedPopulation{
		Center:  center,
		Time:    t,
		Samples: make([]models.LabeledSample, n),
	}
	for i := 0; i < n; i++ {
		pop.Samples[i] = models.LabeledSample{
			Point: models.GeoPoint{Lat: lats[i], Lon: lons[i]},
			Sample: models.ForecastSample{
				Time:  t,
				Cloud: clouds[i],
				Rain:  rains[i],
				TEC:   tecs[i],
				Kp:    kps[i],
			},
		}
	}
	return pop
}
