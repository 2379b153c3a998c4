package training

import (
	"context"
	"time"

	"github.com/claude/lifttrack/internal/models"
	"github.com/google/uuid"
)

// XPGrant is the XP awarded to one muscle group for one session.
type XPGrant struct {
	MuscleGroup      string `json:"muscle_group"`
	BaseXP           int    `json:"base_xp"`
	ProgressionBonus int    `json:"progression_bonus"`
	TotalXP          int    `json:"total_xp"`
}

// SessionXPSummary is the summed XP of one completed session, for progress
// charts.
type SessionXPSummary struct {
	SessionID uuid.UUID `json:"session_id"`
	Date      time.Time `json:"date"`
	Volume    int       `json:"total_volume"`
	XPGained  int       `json:"xp_gained"`
}

// Store is the persistence contract the engine runs against. *storage.DB is
// the production implementation.
//
// Lookup methods that can legitimately find nothing (InProgressSession,
// LatestCompletedSession, PreviousSet) return (nil, nil) rather than
// ErrNotFound; point lookups by ID return ErrNotFound.
type Store interface {
	// Users and plans.
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	CountDistinctPlanDays(ctx context.Context, planID uuid.UUID) (int, error)
	GetPlanDay(ctx context.Context, id uuid.UUID) (*models.PlanDay, error)
	GetPlanDayByNumber(ctx context.Context, planID uuid.UUID, dayNumber int) (*models.PlanDay, error)
	GetPlanDayExercises(ctx context.Context, planDayID uuid.UUID) ([]models.PlanDayExerciseDetail, error)

	// Sessions.
	CreateSession(ctx context.Context, userID, planDayID uuid.UUID, startedAt time.Time, weekNumber, dayInWeek int) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	InProgressSession(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.Session, error)
	LatestCompletedSession(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.Session, error)
	CountCompletedSessions(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)
	CountCompletedSessionsTotal(ctx context.Context, userID uuid.UUID) (int, error)
	RecentCompletedSessions(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error)
	// EndSession sets ended_at only if it is still null. Returns false when
	// the session was already ended, so XP processing runs at most once.
	EndSession(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, notes *string) (bool, error)
	UpdateSessionTimes(ctx context.Context, sessionID uuid.UUID, startedAt, endedAt time.Time) error
	UpdateSessionNotes(ctx context.Context, sessionID uuid.UUID, notes *string) error
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error

	// Session sets.
	InsertSet(ctx context.Context, set *models.SessionSet) error
	CountSets(ctx context.Context, sessionID uuid.UUID) (int, error)
	NonWarmupSetCounts(ctx context.Context, sessionID uuid.UUID) ([]models.ExerciseSetCount, error)
	SessionSetsForXP(ctx context.Context, sessionID uuid.UUID) ([]models.SetWithExercise, error)
	// PreviousSet returns the most recent non-warmup set for the exercise
	// from any completed session other than excludeSessionID.
	PreviousSet(ctx context.Context, userID, exerciseID, excludeSessionID uuid.UUID) (*models.SetRef, error)
	UpdateSet(ctx context.Context, setID uuid.UUID, weight float64, reps int) error
	DeleteSet(ctx context.Context, setID uuid.UUID) error
	HasCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) (bool, error)
	InsertCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) error
	DeleteCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) error

	// XP.
	// ApplyXPGrants atomically inserts one transaction row per grant and adds
	// each grant's total to the muscle group's cumulative XP.
	ApplyXPGrants(ctx context.Context, userID, sessionID uuid.UUID, grants []XPGrant) error
	MuscleGroupXP(ctx context.Context, userID uuid.UUID) ([]models.MuscleGroupXP, error)
	// SessionXPSummaries aggregates the user's XP transactions per completed
	// session, newest first. Volume is the summed base XP, so bodyweight sets
	// contribute; sessions with no transactions do not appear.
	SessionXPSummaries(ctx context.Context, userID uuid.UUID, limit int) ([]SessionXPSummary, error)
}
