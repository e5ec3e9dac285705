package models

import "time"

// GeoPoint is a geographic coordinate in floating point degrees.
// Values obtained from geocoding are never mutated afterwards.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ForecastSample is one synthetic feature vector produced by the scenario
// generator. It lives for a single interaction and is never persisted.
type ForecastSample struct {
	Time  time.Time `json:"time"`
	Cloud float64   `json:"cloud"` // cloud cover percentage, 0..100
	Rain  float64   `json:"rain"`  // rain accumulation in mm, >= 0
	TEC   float64   `json:"tec"`   // ionospheric total electron content index
	Kp    int       `json:"kp"`    // planetary Kp index, 0..9
}

// LabeledSample pairs a scattered point with its feature vector, the outage
// label derived from the threshold rule, and the model prediction where one
// has been made.
type LabeledSample struct {
	Point   GeoPoint       `json:"point"`
	Sample  ForecastSample `json:"sample"`
	Outage  bool           `json:"outage"`
	Predict bool           `json:"predicted"`
}

// SimulatedPopulation is the ordered set of labeled samples scattered around
// a center point. Regenerated on every prediction request, never cached.
type SimulatedPopulation struct {
	Center  GeoPoint        `json:"center"`
	Time    time.Time       `json:"time"`
	Samples []LabeledSample `json:"samples"`
}

// OutageCount returns how many samples carry a positive model prediction.
func (p *SimulatedPopulation) OutageCount() int {
	n := 0
	for _, s := range p.Samples {
		if s.Predict {
			n++
		}
	}
	return n
}

// ForecastEntry is one 3-hour slot of the weather forecast time series.
type ForecastEntry struct {
	Time  time.Time `json:"time"`
	Cloud float64   `json:"cloud"`
	Rain  float64   `json:"rain"`
}

// KpEntry is one record of the geomagnetic index history.
type KpEntry struct {
	Time time.Time `json:"time"`
	Kp   float64   `json:"kp"`
}

// Place is a geocoded location with its canonical display label.
type Place struct {
	Point GeoPoint `json:"point"`
	Label string   `json:"label"`
}

// RoutePath is a driving route polyline with its provider summary.
// Immutable once fetched; per-vertex labels are computed afterwards.
type RoutePath struct {
	Points      []GeoPoint `json:"points"`
	DistanceKM  float64    `json:"distance_km"`
	DurationMin float64    `json:"duration_min"`
}

// RouteSegment is one labeled leg of the route: the vertex at the 1-based
// position index along the polyline together with its outage label and the
// great-circle length from the previous vertex.
type RouteSegment struct {
	Index    int      `json:"index"`
	From     GeoPoint `json:"from"`
	To       GeoPoint `json:"to"`
	LengthKM float64  `json:"length_km"`
	Outage   bool     `json:"outage"`
}

// LabeledRoute is the fully evaluated route: geocoded endpoints, the fetched
// polyline, and one labeled segment per vertex after the first.
type LabeledRoute struct {
	Start    Place          `json:"start"`
	End      Place          `json:"end"`
	Path     RoutePath      `json:"path"`
	Segments []RouteSegment `json:"segments"`
}

// OutageSegments returns how many route segments are labeled as outages.
func (r *LabeledRoute) OutageSegments() int {
	n := 0
	for _, s := range r.Segments {
		if s.Outage {
			n++
		}
	}
	return n
}

// NormalSegments returns how many route segments are not labeled as outages.
func (r *LabeledRoute) NormalSegments() int {
	return len(r.Segments) - r.OutageSegments()
}

// RoutePreviewPoint is one entry of the coarse route preview, which mixes a
// live-ish cloud value with random TEC/Kp draws.
type RoutePreviewPoint struct {
	Point  GeoPoint `json:"point"`
	Label  string   `json:"place"`
	Cloud  float64  `json:"cloud_cover"`
	TEC    float64  `json:"tec"`
	Kp     int      `json:"geomagnetic"`
	Outage bool     `json:"outage"`
}

// Prediction is the complete result of a location-mode prediction: the
// single-point rule evaluation, the model-labeled population, and the
// training diagnostics panel text.
type Prediction struct {
	Place      Place               `json:"place"`
	Time       time.Time           `json:"time"`
	Sample     ForecastSample      `json:"sample"`
	Outage     bool                `json:"outage"`
	Population SimulatedPopulation `json:"population"`
	Report     string              `json:"model_report"`
}

// Advisory is a recent space-weather advisory shown on the dashboard.
type Advisory struct {
	Title     string    `json:"title"`
	Severity  string    `json:"severity"`
	Published time.Time `json:"published"`
}
