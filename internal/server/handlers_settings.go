package server

import (
	"encoding/json"
	"net/http"
)

// Settings is the user-tunable slice of the user record.
type Settings struct {
	WeightUnit         string `json:"weight_unit"`
	TrackLaterEnabled  bool   `json:"track_later_enabled"`
	DefaultRestSeconds int    `json:"default_rest_seconds"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Settings{
		WeightUnit:         user.WeightUnit,
		TrackLaterEnabled:  user.TrackLaterEnabled,
		DefaultRestSeconds: user.DefaultRestSeconds,
	})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WeightUnit != "kg" && req.WeightUnit != "lbs" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight_unit must be kg or lbs"})
		return
	}
	if req.DefaultRestSeconds < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "default_rest_seconds must not be negative"})
		return
	}

	if err := s.dir.UpdatePreferences(r.Context(), user.ID, req.WeightUnit, req.TrackLaterEnabled, req.DefaultRestSeconds); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
