package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Deekshith1804/gnss2/internal/charts"
	"github.com/Deekshith1804/gnss2/internal/config"
	"github.com/Deekshith1804/gnss2/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// dashboardData drives the main page template. Chart fragments and the
// heatmap payload are only present once the session has results.
type dashboardData struct {
	Version    string
	RouteMode  bool
	Bounds     populationBounds
	Advisories []models.Advisory

	Location   *models.Place
	Prediction *models.Prediction
	Route      *models.LabeledRoute

	KpChart       template.HTML
	ForecastChart template.HTML
	HeatmapJSON   template.JS
}

// HandleDashboard serves the single-page dashboard. The page carries the
// Leaflet shell and any results already present in the session, so a
// refresh does not lose the last prediction.
func (s *Server) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state := s.sessionState(w, r)

	data := dashboardData{
		Version:    config.GetVersion(),
		RouteMode:  s.Config.RouteModeEnabled(),
		Bounds:     sliderBounds(),
		Advisories: s.Advisories.Fetch(r.Context()),
		Location:   state.Location,
		Prediction: state.Prediction,
		Route:      state.Route,
	}

	if len(state.KpHistory) > 0 {
		if frag, err := charts.KpTrendHTML(state.KpHistory); err == nil {
			data.KpChart = template.HTML(frag)
		}
	}
	if len(state.Forecast) > 0 {
		if frag, err := charts.ForecastHTML(state.Forecast); err == nil {
			data.ForecastChart = template.HTML(frag)
		}
	}
	if state.Prediction != nil {
		if payload, err := json.Marshal(heatmapPoints(&state.Prediction.Population)); err == nil {
			data.HeatmapJSON = template.JS(payload)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.log.Error("dashboard render failed", err)
	}
}

// heatmapPoint is one [lat, lon, weight] triple for the Leaflet heat layer.
type heatmapPoint [3]float64

func heatmapPoints(pop *models.SimulatedPopulation) []heatmapPoint {
	points := make([]heatmapPoint, 0, len(pop.Samples))
	for _, s := range pop.Samples {
		weight := 0.2
		if s.Predict {
			weight = 1.0
		}
		points = append(points, heatmapPoint{s.Point.Lat, s.Point.Lon, weight})
	}
	return points
}
