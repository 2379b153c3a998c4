package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/training"
)

// DataSource abstracts the progression engine for MCP tools.
type DataSource interface {
	Status(ctx context.Context, userID uuid.UUID, now time.Time) (*training.Status, error)
	Consistency(ctx context.Context, userID uuid.UUID, now time.Time) (*training.ConsistencyMetrics, error)
	MuscleProgress(ctx context.Context, userID uuid.UUID) ([]training.MuscleProgress, error)
	CharacterLevel(ctx context.Context, userID uuid.UUID) (int, error)
	ProgressHistory(ctx context.Context, userID uuid.UUID, limit int) ([]training.SessionXPSummary, error)
	RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error)
}

// Compile-time check: *training.Engine satisfies DataSource.
var _ DataSource = (*training.Engine)(nil)
