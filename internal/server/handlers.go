package server

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	data := s.catalog.JSON()
	if data == nil {
		writeError(w, http.StatusServiceUnavailable, "country catalog not loaded yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("X-Catalog-Source", string(s.catalog.Source()))
	w.Write(data)
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	country, ok := s.catalog.ByName(name)
	if !ok {
		writeError(w, http.StatusNotFound, "country not found")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, country)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := map[string]any{
		"status":         "ok",
		"database":       "ok",
		"catalog_source": s.catalog.Source(),
		"countries":      s.catalog.Len(),
	}
	status := http.StatusOK

	if err := s.db.Ping(ctx); err != nil {
		log.Warn("health check: database ping failed", "error", err)
		resp["status"] = "degraded"
		resp["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if updatedAt := s.catalog.UpdatedAt(); !updatedAt.IsZero() {
		resp["last_update"] = updatedAt.Format(time.RFC3339)
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	writeJSON(w, status, resp)
}
