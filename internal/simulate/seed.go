package simulate

import "time"

// SeedRange bounds every derived seed to [0, SeedRange).
const SeedRange = 100000

// LocationSeed derives the reproducible seed for a (location, forecast time)
// pair. Identical inputs always yield the identical seed; this is the
// reproducibility guarantee behind stable UI redraws.
func LocationSeed(lat, lon float64, t time.Time) uint64 {
	raw := int64(lat*1000 + lon*1000 + float64(t.Unix()))
	return reduce(raw)
}

// RouteSeed derives the seed for a route vertex from its coordinates and its
// 1-based position index along the polyline.
func RouteSeed(lat, lon float64, index int) uint64 {
	raw := int64(lat*10000 + lon*10000 + float64(index))
	return reduce(raw)
}

func reduce(raw int64) uint64 {
	m := raw % SeedRange
	if m < 0 {
		m += SeedRange
	}
	return uint64(m)
}
