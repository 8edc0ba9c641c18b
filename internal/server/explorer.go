package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
	"github.com/backyonatan-alt/atlas/backend/internal/service"
)

type countryRequest struct {
	CountryName string `json:"country_name"`
	CountryID   string `json:"country_id"`
}

func (s *Server) handleUpdateCountryCount(w http.ResponseWriter, r *http.Request) {
	var req countryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	newCount, err := s.counter.RecordView(r.Context(), req.CountryName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]int64{"newCount": newCount})
}

func (s *Server) handleCountryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.counter.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type saveResponse struct {
	Message      string `json:"message"`
	CountryName  string `json:"country_name"`
	AlreadySaved bool   `json:"alreadySaved"`
}

func (s *Server) handleSaveCountry(w http.ResponseWriter, r *http.Request) {
	var req countryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Older frontends send the catalog id instead of the name.
	name := req.CountryName
	if name == "" && req.CountryID != "" {
		c, ok := s.catalog.ByID(req.CountryID)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown country_id %q", req.CountryID))
			return
		}
		name = c.Name
	}

	result, err := s.saves.SaveCountry(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "Success! The country is saved."
	if result.AlreadySaved {
		msg = "The country was already saved."
	}
	writeJSON(w, http.StatusOK, saveResponse{
		Message:      msg,
		CountryName:  name,
		AlreadySaved: result.AlreadySaved,
	})
}

type savedCountryResponse struct {
	CountryName string         `json:"country_name"`
	ViewCount   int64          `json:"view_count"`
	SavedAt     time.Time      `json:"saved_at"`
	Country     *model.Country `json:"country,omitempty"`
}

// handleSavedCountries joins the saved list with view counts and catalog
// details. The join happens here; each service call is one statement.
func (s *Server) handleSavedCountries(w http.ResponseWriter, r *http.Request) {
	saved, err := s.saves.ListSaved(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	counts, err := s.counter.Counts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]savedCountryResponse, 0, len(saved))
	for _, sc := range saved {
		item := savedCountryResponse{
			CountryName: sc.CountryName,
			ViewCount:   counts[sc.CountryName],
			SavedAt:     sc.CreatedAt,
		}
		if c, ok := s.catalog.ByName(sc.CountryName); ok {
			item.Country = &c
		}
		resp = append(resp, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

type addUserResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := s.profiles.UpsertProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addUserResponse{
		Message: "Success! User has been added.",
		ID:      profile.ID,
	})
}

func (s *Server) handleNewestUser(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.LatestProfile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	users := []model.Profile{}
	if profile != nil {
		users = append(users, *profile)
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAllUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.History(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}
