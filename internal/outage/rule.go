// Package outage holds the fixed threshold rule that defines a GNSS outage.
// Three profiles exist with deliberately independent thresholds; they are
// kept as distinct named configurations bound to their call sites rather
// than unified.
package outage

import "github.com/Deekshith1804/gnss2/internal/models"

// Profile is one named threshold configuration. Cloud, rain, and TEC use
// strict greater-than; Kp uses greater-or-equal.
type Profile struct {
	Name      string
	CloudOver float64
	RainOver  float64
	TECOver   float64
	KpAtLeast int
}

// LocationProfile labels the single-point prediction and the synthetic
// training population in location mode.
var LocationProfile = Profile{
	Name:      "location",
	CloudOver: 70,
	RainOver:  1,
	TECOver:   25,
	KpAtLeast: 5,
}

// RouteVertexProfile labels each route vertex from its own seeded draw.
// Thresholds currently match LocationProfile but the two modes tune
// independently.
var RouteVertexProfile = Profile{
	Name:      "route-vertex",
	CloudOver: 70,
	RainOver:  1,
	TECOver:   25,
	KpAtLeast: 5,
}

// RoutePreviewProfile is used only by the coarse route preview, which mixes
// live cloud cover with random TEC/Kp draws. It has no rain term.
var RoutePreviewProfile = Profile{
	Name:      "route-preview",
	CloudOver: 70,
	RainOver:  -1, // no rain condition
	TECOver:   20,
	KpAtLeast: 6,
}

// Evaluate applies the profile to a feature vector. Outage is declared only
// when every enabled condition exceeds its threshold.
func (p Profile) Evaluate(s models.ForecastSample) bool {
	return s.Cloud > p.CloudOver &&
		s.Rain > p.RainOver &&
		s.TEC > p.TECOver &&
		s.Kp >= p.KpAtLeast
}
