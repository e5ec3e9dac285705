// Package server ties the dashboard together: the embedded HTML page, the
// JSON API consumed by its scripts, the CSV and PNG exports, and the
// health and metrics endpoints.
package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Deekshith1804/gnss2/internal/config"
	"github.com/Deekshith1804/gnss2/internal/fetchers"
	"github.com/Deekshith1804/gnss2/internal/geocode"
	"github.com/Deekshith1804/gnss2/internal/logger"
	"github.com/Deekshith1804/gnss2/internal/predict"
	"github.com/Deekshith1804/gnss2/internal/route"
	"github.com/Deekshith1804/gnss2/internal/session"
)

// Server is the application server for the GNSS outage dashboard.
type Server struct {
	Config *config.Config

	Predictor  *predict.Service
	Geocoder   *geocode.Client
	Pipeline   *route.Pipeline
	Overview   *route.Overview
	Advisories *fetchers.AdvisoryFetcher
	Sessions   *session.Store

	log      *logger.Logger
	validate *validator.Validate
}

// NewServer wires every component from the configuration.
func NewServer(cfg *config.Config) *Server {
	weather := fetchers.NewWeatherFetcher(cfg.OWMForecastURL, cfg.OpenWeatherAPIKey,
		cfg.WeatherTimeout, cfg.WeatherCacheTTL)
	kp := fetchers.NewKpFetcher(cfg.NOAAKpURL, cfg.KpTimeout, cfg.KpCacheTTL)
	geocoder := geocode.New(cfg.ORSBaseURL, cfg.ORSAPIKey, cfg.GeocodeQualifier,
		cfg.SuggestCountry, cfg.SuggestSize,
		cfg.GeocodeTimeout, cfg.SuggestTimeout, cfg.GeocodeCacheTTL)
	directions := route.NewDirectionsClient(cfg.ORSBaseURL, cfg.ORSAPIKey, cfg.RouteTimeout)

	return &Server{
		Config:     cfg,
		Predictor:  predict.NewService(weather, kp, geocoder, cfg.TrainingPoints, cfg.ForestTrees, cfg.TrainingSeed),
		Geocoder:   geocoder,
		Pipeline:   route.NewPipeline(geocoder, directions),
		Overview:   route.NewOverview(weather, geocoder, cfg.TrainingSeed),
		Advisories: fetchers.NewAdvisoryFetcher(cfg.SIDCRSSURL, cfg.KpTimeout),
		Sessions:   session.NewStore(),
		log:        logger.WithComponent("server"),
		validate:   validator.New(),
	}
}

// SetupRoutes configures HTTP routes for the server.
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/suggest", s.HandleSuggest)
	mux.HandleFunc("/api/lookup", s.HandleLookup)
	mux.HandleFunc("/api/predict", s.HandlePredict)
	mux.HandleFunc("/api/route", s.HandleRoute)
	mux.HandleFunc("/api/route/preview", s.HandleRoutePreview)

	mux.HandleFunc("/export/population.csv", s.HandleExportCSV)
	mux.HandleFunc("/export/forecast.png", s.HandleExportPNG)

	mux.HandleFunc("/", s.HandleDashboard)

	return mux
}

// sessionState returns the caller's session, creating one (and setting the
// cookie) on first contact.
func (s *Server) sessionState(w http.ResponseWriter, r *http.Request) *session.State {
	if c, err := r.Cookie(session.CookieName); err == nil {
		if state, ok := s.Sessions.Get(c.Value); ok {
			return state
		}
	}
	state := s.Sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    state.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}
