package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/training"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	sessions, err := s.engine.RecentSessions(r.Context(), user.ID, parseLimit(r, 20))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.engine.Session(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sets, err := s.dir.SessionSets(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"sets":    sets,
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		PlanDayID  uuid.UUID `json:"plan_day_id"`
		WeekNumber int       `json:"week_number"`
		DayInWeek  int       `json:"day_in_week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	session, err := s.engine.StartSession(r.Context(), user.ID, req.PlanDayID, time.Now(), req.WeekNumber, req.DayInWeek)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := s.ownedSession(w, r, sessionID); !ok {
		return
	}

	var req struct {
		Notes *string `json:"notes"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	session, err := s.engine.EndSession(r.Context(), sessionID, time.Now(), req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := s.ownedSession(w, r, sessionID); !ok {
		return
	}

	var req struct {
		StartedAt *time.Time `json:"started_at"`
		EndedAt   *time.Time `json:"ended_at"`
		Notes     *string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if req.StartedAt != nil && req.EndedAt != nil {
		if err := s.engine.UpdateSessionTimes(r.Context(), sessionID, *req.StartedAt, *req.EndedAt); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.Notes != nil {
		if err := s.engine.UpdateSessionNotes(r.Context(), sessionID, req.Notes); err != nil {
			s.writeError(w, err)
			return
		}
	}

	session, err := s.engine.Session(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := s.ownedSession(w, r, sessionID); !ok {
		return
	}

	if err := s.engine.DeleteSession(r.Context(), sessionID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := s.ownedSession(w, r, sessionID); !ok {
		return
	}

	var req struct {
		ExerciseID uuid.UUID `json:"exercise_id"`
		SetNumber  int       `json:"set_number"`
		Weight     float64   `json:"weight"`
		Reps       int       `json:"reps"`
		IsWarmup   bool      `json:"is_warmup"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	set, err := s.engine.LogSet(r.Context(), training.LogSetParams{
		SessionID:  sessionID,
		ExerciseID: req.ExerciseID,
		SetNumber:  req.SetNumber,
		Weight:     req.Weight,
		Reps:       req.Reps,
		IsWarmup:   req.IsWarmup,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleToggleComplete(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseID(w, r, "exerciseID")
	if !ok {
		return
	}
	if _, ok := s.ownedSession(w, r, sessionID); !ok {
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.engine.ToggleExerciseComplete(r.Context(), sessionID, exerciseID, req.Completed); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": req.Completed})
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if !s.ownsSet(w, r, setID) {
		return
	}

	var req struct {
		Weight float64 `json:"weight"`
		Reps   int     `json:"reps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.engine.UpdateSet(r.Context(), setID, req.Weight, req.Reps); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SetRef{Weight: req.Weight, Reps: req.Reps})
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if !s.ownsSet(w, r, setID) {
		return
	}

	if err := s.engine.DeleteSet(r.Context(), setID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedSession loads the session and checks it belongs to the request
// identity. A session owned by someone else reads as not found, so the API
// key alone never reaches another user's data.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) (*models.Session, bool) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return nil, false
	}
	session, err := s.engine.Session(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if session.UserID != user.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return nil, false
	}
	return session, true
}

// ownsSet checks set ownership through its parent session.
func (s *Server) ownsSet(w http.ResponseWriter, r *http.Request, setID uuid.UUID) bool {
	set, err := s.dir.GetSet(r.Context(), setID)
	if err != nil {
		s.writeError(w, err)
		return false
	}
	_, ok := s.ownedSession(w, r, set.SessionID)
	return ok
}

// parseID reads a UUID route parameter, writing a 400 on malformed input.
func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
