package models

import (
	"time"

	"github.com/google/uuid"
)

// User holds the plan assignment and preferences the engine reads.
// Identity fields are owned by the auth layer and never mutated here.
type User struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	Name               *string    `json:"name,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	CurrentPlanID      *uuid.UUID `json:"current_plan_id,omitempty"`
	PlanStartDate      *time.Time `json:"plan_start_date,omitempty"`
	WeightUnit         string     `json:"weight_unit"`
	TrackLaterEnabled  bool       `json:"track_later_enabled"`
	DefaultRestSeconds int        `json:"default_rest_seconds"`
}

// Plan is a named training template.
type Plan struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	TotalWeeks  *int      `json:"total_weeks,omitempty"`
	DaysPerWeek int       `json:"days_per_week"`
	IsTemplate  bool      `json:"is_template"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlanDay is one training day within a plan, e.g. "Push" or "Pull".
type PlanDay struct {
	ID          uuid.UUID `json:"id"`
	PlanID      uuid.UUID `json:"plan_id"`
	DayNumber   int       `json:"day_number"`
	Name        string    `json:"name"`
	WeekVariant int       `json:"week_variant"`
}

// Exercise is an entry in the master exercise list.
type Exercise struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	MuscleGroup          string     `json:"muscle_group"`
	IsCompound           bool       `json:"is_compound"`
	IsBodyweight         bool       `json:"is_bodyweight"`
	NextProgressionID    *uuid.UUID `json:"next_progression_id,omitempty"`
	DifficultyMultiplier float64    `json:"difficulty_multiplier"`
}

// PlanDayExercise assigns an exercise to a plan day with targets.
type PlanDayExercise struct {
	ID          uuid.UUID `json:"id"`
	PlanDayID   uuid.UUID `json:"plan_day_id"`
	ExerciseID  uuid.UUID `json:"exercise_id"`
	Order       int       `json:"order"`
	TargetSets  int       `json:"target_sets"`
	TargetReps  string    `json:"target_reps"`
	DefaultReps int       `json:"default_reps"`
	RPETarget   *float64  `json:"rpe_target,omitempty"`
}

// PlanDayExerciseDetail is a PlanDayExercise joined with its exercise metadata,
// ordered as configured for the day.
type PlanDayExerciseDetail struct {
	ExerciseID   uuid.UUID `json:"exercise_id"`
	Name         string    `json:"name"`
	MuscleGroup  string    `json:"muscle_group"`
	IsBodyweight bool      `json:"is_bodyweight"`
	Order        int       `json:"order"`
	TargetSets   int       `json:"target_sets"`
	TargetReps   string    `json:"target_reps"`
	DefaultReps  int       `json:"default_reps"`
	RPETarget    *float64  `json:"rpe_target,omitempty"`
}

// Session is one workout instance. EndedAt is nil while in progress and set
// exactly once on completion.
type Session struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	PlanDayID  uuid.UUID  `json:"plan_day_id"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	WeekNumber int        `json:"week_number"`
	DayInWeek  int        `json:"day_in_week"`
	Notes      *string    `json:"notes,omitempty"`
}

// Completed reports whether the session has ended.
func (s *Session) Completed() bool {
	return s.EndedAt != nil
}

// SessionSet is a single logged set. The row with SetNumber 0 and IsWarmup
// true is the completion placeholder written by track-later mode; it is
// excluded from all volume and XP math.
type SessionSet struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	SetNumber  int       `json:"set_number"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	RPE        *float64  `json:"rpe,omitempty"`
	IsWarmup   bool      `json:"is_warmup"`
	CreatedAt  time.Time `json:"created_at"`
}

// SetWithExercise is a non-warmup session set joined with the exercise fields
// XP processing needs.
type SetWithExercise struct {
	ExerciseID           uuid.UUID
	MuscleGroup          string
	IsBodyweight         bool
	DifficultyMultiplier float64
	Weight               float64
	Reps                 int
}

// SetRef is the weight/reps pair of a previously logged set, used for
// progression detection.
type SetRef struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// MuscleGroupXP is the per-user cumulative XP total for one muscle group.
// TotalXP only ever increases.
type MuscleGroupXP struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	MuscleGroup  string    `json:"muscle_group"`
	TotalXP      int       `json:"total_xp"`
	CurrentLevel int       `json:"current_level"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// XPTransaction is the immutable audit record of XP granted to one muscle
// group in one session.
type XPTransaction struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	SessionID        uuid.UUID `json:"session_id"`
	MuscleGroup      string    `json:"muscle_group"`
	BaseXP           int       `json:"base_xp"`
	ProgressionBonus int       `json:"progression_bonus"`
	TotalXP          int       `json:"total_xp"`
	CreatedAt        time.Time `json:"created_at"`
}

// ExerciseSetCount is a per-exercise count of non-warmup sets in a session.
type ExerciseSetCount struct {
	ExerciseID   uuid.UUID `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Sets         int       `json:"sets"`
}
