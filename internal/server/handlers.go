package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Deekshith1804/gnss2/internal/charts"
	"github.com/Deekshith1804/gnss2/internal/geocode"
	"github.com/Deekshith1804/gnss2/internal/metrics"
	"github.com/Deekshith1804/gnss2/internal/models"
	"github.com/Deekshith1804/gnss2/internal/predict"
)

// lookupRequest selects a place and loads its forecast context.
type lookupRequest struct {
	Place string `json:"place" validate:"required"`
}

// predictRequest runs a location-mode prediction at one forecast time.
// Coordinates are pointers so a missing field is distinguishable from a
// legitimate 0 on the equator or prime meridian.
type predictRequest struct {
	Lat    *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon    *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Time   string   `json:"time" validate:"required"`
	Points int      `json:"points" validate:"required,min=500,max=5000"`
}

// routeRequest evaluates a route between two selected places. Both fields
// must be non-empty selections; free text is rejected here before any
// network call.
type routeRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// HandleHealth provides the health check endpoint.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"route_mode": s.Config.RouteModeEnabled(),
		"sessions":   s.Sessions.Len(),
	})
}

// HandleSuggest serves place-name autocomplete. It always answers 200 with
// a list; a failing or unconfigured provider yields an empty one.
func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	suggestions := s.Geocoder.Suggest(r.Context(), r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// HandleLookup geocodes a place and fetches its forecast series and the Kp
// history, storing both in the session so the page can offer forecast
// timestamps before predicting.
func (s *Server) HandleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !s.decode(w, r, &req) {
		return
	}
	state := s.sessionState(w, r)

	place, forecast, history, err := s.Predictor.Lookup(r.Context(), req.Place)
	if err != nil {
		if errors.Is(err, geocode.ErrPlaceNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("place %q not found", req.Place))
			return
		}
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	state.Location = &place
	state.Forecast = forecast
	state.KpHistory = history

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"place":          place,
		"forecast":       forecast,
		"forecast_times": state.ForecastTimes(),
		"kp_history":     history,
	})
}

// HandlePredict runs a location-mode prediction and returns the rule
// verdict, the model-labeled population for the heatmap, and the training
// diagnostics text.
func (s *Server) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !s.decode(w, r, &req) {
		return
	}
	state := s.sessionState(w, r)

	at, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time %q: must be RFC 3339", req.Time))
		return
	}

	place := models.Place{Point: models.GeoPoint{Lat: *req.Lat, Lon: *req.Lon}}
	if state.Location != nil && state.Location.Point == place.Point {
		place.Label = state.Location.Label
	} else {
		place.Label = s.Geocoder.Reverse(r.Context(), place.Point.Lat, place.Point.Lon)
	}

	prediction, err := s.Predictor.Predict(place, at, req.Points)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state.Prediction = prediction

	writeJSON(w, http.StatusOK, prediction)
}

// HandleRoute evaluates a route between two selections and returns the
// labeled polyline with its summary.
func (s *Server) HandleRoute(w http.ResponseWriter, r *http.Request) {
	if !s.requireRouteMode(w) {
		return
	}
	var req routeRequest
	if !s.decode(w, r, &req) {
		return
	}
	state := s.sessionState(w, r)

	result, err := s.Pipeline.Evaluate(r.Context(), req.Start, req.End)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	state.Route = result
	metrics.PredictionsTotal.WithLabelValues("route").Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"route":           result,
		"outage_segments": result.OutageSegments(),
		"normal_segments": len(result.Segments) - result.OutageSegments(),
	})
}

// HandleRoutePreview runs the coarse preview over the session's current
// route. It requires a prior route evaluation.
func (s *Server) HandleRoutePreview(w http.ResponseWriter, r *http.Request) {
	if !s.requireRouteMode(w) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state := s.sessionState(w, r)
	if state.Route == nil {
		s.writeError(w, http.StatusConflict, "no route evaluated yet")
		return
	}

	start := time.Now()
	preview := s.Overview.Predict(r.Context(), state.Route.Path.Points)
	metrics.PredictionsTotal.WithLabelValues("route_preview").Inc()
	metrics.PredictionDuration.WithLabelValues("route_preview").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, map[string]interface{}{"preview": preview})
}

// HandleExportCSV streams the session's simulated population as CSV with
// the fixed download filename.
func (s *Server) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state := s.sessionState(w, r)
	if state.Prediction == nil {
		s.writeError(w, http.StatusConflict, "no prediction to export yet")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", models.PopulationCSVFilename))
	if err := state.Prediction.Population.WriteCSV(w); err != nil {
		s.log.Error("csv export failed", err)
	}
}

// HandleExportPNG renders the session's forecast series as a PNG chart.
func (s *Server) HandleExportPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state := s.sessionState(w, r)
	if len(state.Forecast) == 0 {
		s.writeError(w, http.StatusConflict, "no forecast loaded yet")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := charts.ForecastPNG(state.Forecast, w); err != nil {
		s.log.Error("png export failed", err)
	}
}

// decode parses and validates a JSON POST body, writing the error response
// itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

func (s *Server) requireRouteMode(w http.ResponseWriter) bool {
	if !s.Config.RouteModeEnabled() {
		s.writeError(w, http.StatusServiceUnavailable,
			"route mode is disabled: ORS_API_KEY is not configured")
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.log.Warn("request failed", map[string]interface{}{"status": status, "error": msg})
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// populationBounds is exposed to the dashboard template.
type populationBounds struct {
	Min int
	Max int
}

func sliderBounds() populationBounds {
	return populationBounds{Min: predict.MinPoints, Max: predict.MaxPoints}
}
