package route

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/geo/s2"

	"github.com/Deekshith1804/gnss2/internal/geocode"
	"github.com/Deekshith1804/gnss2/internal/models"
	"github.com/Deekshith1804/gnss2/internal/outage"
	"github.com/Deekshith1804/gnss2/internal/simulate"
)

const earthRadiusKM = 6371.01

// State tracks a route request through the pipeline.
type State int

const (
	StateIdle State = iota
	StateGeocoding
	StateRouteFetched
	StateLabeled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGeocoding:
		return "geocoding"
	case StateRouteFetched:
		return "route-fetched"
	case StateLabeled:
		return "labeled"
	default:
		return "unknown"
	}
}

// Pipeline evaluates a route request end to end: geocode both endpoints,
// fetch the polyline, then label each vertex after the first from its own
// deterministic seed. Geocoding or routing failure is terminal for the
// whole request.
type Pipeline struct {
	geocoder   *geocode.Client
	directions *DirectionsClient

	mu    sync.Mutex
	state State
}

// NewPipeline creates a route pipeline in the idle state.
func NewPipeline(geocoder *geocode.Client, directions *DirectionsClient) *Pipeline {
	return &Pipeline{geocoder: geocoder, directions: directions, state: StateIdle}
}

// State returns the pipeline's current state. One pipeline serves every
// request, so the field reports the most recent transition.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Evaluate runs the pipeline for a start/end pair. Both must be non-empty
// selections; free-text entries are rejected upstream before any network
// call. On any terminal failure the pipeline returns to idle.
func (p *Pipeline) Evaluate(ctx context.Context, start, end string) (*models.LabeledRoute, error) {
	p.setState(StateGeocoding)

	startPlace, err := p.geocoder.Search(ctx, start)
	if err != nil {
		p.setState(StateIdle)
		return nil, fmt.Errorf("geocoding failed for start %q: %w", start, err)
	}
	endPlace, err := p.geocoder.Search(ctx, end)
	if err != nil {
		p.setState(StateIdle)
		return nil, fmt.Errorf("geocoding failed for end %q: %w", end, err)
	}

	path, err := p.directions.Fetch(ctx, startPlace.Point, endPlace.Point)
	if err != nil {
		p.setState(StateIdle)
		return nil, err
	}
	p.setState(StateRouteFetched)

	result := &models.LabeledRoute{
		Start:    startPlace,
		End:      endPlace,
		Path:     path,
		Segments: labelVertices(path.Points),
	}
	p.setState(StateLabeled)
	return result, nil
}

// labelVertices assigns an outage label to every vertex after the first,
// seeded by its coordinates and 1-based position so re-renders reproduce
// the same coloring without re-fetching the route.
func labelVertices(points []models.GeoPoint) []models.RouteSegment {
	if len(points) < 2 {
		return nil
	}
	segments := make([]models.RouteSegment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		pt := points[i]
		segments = append(segments, models.RouteSegment{
			Index:    i,
			From:     points[i-1],
			To:       pt,
			LengthKM: segmentKM(points[i-1], pt),
			Outage:   VertexOutage(pt.Lat, pt.Lon, i),
		})
	}
	return segments
}

// VertexOutage evaluates the route-vertex rule profile against the
// deterministic draw for a vertex.
func VertexOutage(lat, lon float64, index int) bool {
	sample := simulate.Draw(simulate.RouteSeed(lat, lon, index), time.Time{})
	return outage.RouteVertexProfile.Evaluate(sample)
}

// segmentKM is the great-circle length of one leg.
func segmentKM(a, b models.GeoPoint) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * earthRadiusKM
}
