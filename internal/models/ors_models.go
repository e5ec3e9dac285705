package models

// ORSGeocodeResponse represents the openrouteservice geocoding GeoJSON
// envelope used by search, autocomplete, and reverse lookups.
type ORSGeocodeResponse struct {
	Features []ORSGeocodeFeature `json:"features"`
}

// ORSGeocodeFeature is one geocoding candidate.
type ORSGeocodeFeature struct {
	Geometry   ORSPointGeometry     `json:"geometry"`
	Properties ORSFeatureProperties `json:"properties"`
}

// ORSPointGeometry holds a single [lon, lat] coordinate pair.
type ORSPointGeometry struct {
	Coordinates []float64 `json:"coordinates"`
}

// ORSFeatureProperties carries the display label of a candidate place.
type ORSFeatureProperties struct {
	Label string `json:"label"`
}

// ORSRouteResponse represents the openrouteservice driving-car directions
// GeoJSON response.
type ORSRouteResponse struct {
	Features []ORSRouteFeature `json:"features"`
}

// ORSRouteFeature is one route alternative; the service is asked for one.
type ORSRouteFeature struct {
	Geometry   ORSLineGeometry    `json:"geometry"`
	Properties ORSRouteProperties `json:"properties"`
}

// ORSLineGeometry holds the polyline as ordered [lon, lat] pairs.
type ORSLineGeometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// ORSRouteProperties carries the route summary.
type ORSRouteProperties struct {
	Summary ORSRouteSummary `json:"summary"`
}

// ORSRouteSummary is the aggregate distance (meters) and duration (seconds).
type ORSRouteSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}
