package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/training"
)

// Directory is the slice of storage the server uses directly, outside the
// engine: identity resolution and raw set listings. *storage.DB satisfies it.
type Directory interface {
	GetOrCreateUser(ctx context.Context, email, displayName string) (*models.User, error)
	SessionSets(ctx context.Context, sessionID uuid.UUID) ([]models.SessionSet, error)
	GetSet(ctx context.Context, setID uuid.UUID) (*models.SessionSet, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, weightUnit string, trackLater bool, restSeconds int) error
	ListPlans(ctx context.Context) ([]models.Plan, error)
	AssignPlan(ctx context.Context, userID, planID uuid.UUID) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine   *training.Engine
	dir      Directory
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	identity func(r *http.Request) UserInfo
}

// New creates a new Server with all routes configured.
func New(engine *training.Engine, dir Directory, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine: engine,
		dir:    dir,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identityMiddleware)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/status", s.handleStatus)
	s.router.Get("/api/v1/consistency", s.handleConsistency)
	s.router.Get("/api/v1/progress/muscles", s.handleMuscleProgress)
	s.router.Get("/api/v1/progress/character", s.handleCharacterLevel)
	s.router.Get("/api/v1/progress/history", s.handleProgressHistory)
	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/settings", s.handleGetSettings)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/sessions", s.handleStartSession)
		r.Post("/api/v1/sessions/{id}/end", s.handleEndSession)
		r.Patch("/api/v1/sessions/{id}", s.handleUpdateSession)
		r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
		r.Post("/api/v1/sessions/{id}/sets", s.handleLogSet)
		r.Post("/api/v1/sessions/{id}/exercises/{exerciseID}/complete", s.handleToggleComplete)
		r.Patch("/api/v1/sets/{id}", s.handleUpdateSet)
		r.Delete("/api/v1/sets/{id}", s.handleDeleteSet)
		r.Post("/api/v1/plans/{id}/select", s.handleSelectPlan)
		r.Patch("/api/v1/settings", s.handleUpdateSettings)
	})
}
