package server

import (
	"context"
	"net/http"

	"github.com/backyonatan-alt/atlas/backend/internal/cache"
	"github.com/backyonatan-alt/atlas/backend/internal/config"
	"github.com/backyonatan-alt/atlas/backend/internal/logging"
	"github.com/backyonatan-alt/atlas/backend/internal/service"
)

var log = logging.For("server")

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg      *config.Config
	catalog  *cache.Cache
	db       Pinger
	counter  *service.Counter
	saves    *service.Saves
	profiles *service.Profiles
}

func New(cfg *config.Config, catalog *cache.Cache, db Pinger, counter *service.Counter, saves *service.Saves, profiles *service.Profiles) *Server {
	return &Server{
		cfg:      cfg,
		catalog:  catalog,
		db:       db,
		counter:  counter,
		saves:    saves,
		profiles: profiles,
	}
}

// Router returns the HTTP handler with all routes registered. Every route is
// also served under /api for frontends that proxy with that prefix.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /update-one-country-count", s.handleUpdateCountryCount)
	mux.HandleFunc("GET /get-all-country-counts", s.handleCountryCounts)
	mux.HandleFunc("POST /save-one-country", s.handleSaveCountry)
	mux.HandleFunc("GET /get-all-saved-countries", s.handleSavedCountries)
	mux.HandleFunc("POST /add-one-user", s.handleAddUser)
	mux.HandleFunc("GET /get-newest-user", s.handleNewestUser)
	mux.HandleFunc("GET /get-all-users", s.handleAllUsers)
	mux.HandleFunc("GET /countries", s.handleCountries)
	mux.HandleFunc("GET /countries/{name}", s.handleCountry)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", mux))
	root.Handle("/", mux)

	return requestID(logRequests(s.corsMiddleware(root)))
}
