package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
// The zero UUID means no user was bound to the connection.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftTrack training progression server. Query training status, consistency metrics, muscle group levels, XP history, and recent sessions. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetTrainingStatus, Handler: h.getTrainingStatus},
		server.ServerTool{Tool: toolGetConsistency, Handler: h.getConsistency},
		server.ServerTool{Tool: toolGetMuscleLevels, Handler: h.getMuscleLevels},
		server.ServerTool{Tool: toolGetCharacterLevel, Handler: h.getCharacterLevel},
		server.ServerTool{Tool: toolGetProgressHistory, Handler: h.getProgressHistory},
		server.ServerTool{Tool: toolGetRecentSessions, Handler: h.getRecentSessions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTrainingStatus, Handler: h.trainingStatusResource},
		server.ServerResource{Resource: resMuscleLevels, Handler: h.muscleLevelsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resTrainingStatus = mcp.NewResource(
	"lifttrack://training_status",
	"Training Status",
	mcp.WithResourceDescription("The user's current training state: in-progress session, trained today, recovery day, week complete, or the next day to train"),
	mcp.WithMIMEType("application/json"),
)

var resMuscleLevels = mcp.NewResource(
	"lifttrack://muscle_levels",
	"Muscle Levels",
	mcp.WithResourceDescription("Per-muscle-group XP totals and levels with progress toward the next level"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) trainingStatusResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	status, err := h.ds.Status(ctx, uid, time.Now())
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, status)
}

func (h *handlers) muscleLevelsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	progress, err := h.ds.MuscleProgress(ctx, uid)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, progress)
}
