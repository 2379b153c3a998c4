package server

import (
	"net/http"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.dir.ListPlans(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// handleSelectPlan assigns a plan template to the current user. The plan
// start date resets, so program weeks count from the switch.
func (s *Server) handleSelectPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	planID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := s.dir.AssignPlan(r.Context(), user.ID, planID); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"plan_id": planID.String()})
}
