package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/lifttrack/internal/models"
)

// InsertPlanTemplate inserts a plan template. Returns false if a plan with the
// same name already exists, leaving the existing rows untouched.
func (db *DB) InsertPlanTemplate(ctx context.Context, plan *models.Plan) (bool, error) {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO plans (name, description, type, total_weeks, days_per_week, is_template)
		 VALUES ($1, $2, $3, $4, $5, true)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING id, created_at`,
		plan.Name, plan.Description, plan.Type, plan.TotalWeeks, plan.DaysPerWeek,
	).Scan(&plan.ID, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inserting plan: %w", err)
	}
	return true, nil
}

// InsertPlanDay inserts one day of a plan and fills in the generated ID.
func (db *DB) InsertPlanDay(ctx context.Context, day *models.PlanDay) error {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO plan_days (plan_id, day_number, name, week_variant)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		day.PlanID, day.DayNumber, day.Name, day.WeekVariant,
	).Scan(&day.ID)
	if err != nil {
		return fmt.Errorf("inserting plan day: %w", err)
	}
	return nil
}

// GetOrCreateExercise finds an exercise by name or creates it. The upsert
// refreshes nothing on conflict; an exercise's identity is its name.
func (db *DB) GetOrCreateExercise(ctx context.Context, e *models.Exercise) error {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (name, muscle_group, is_compound, is_bodyweight, difficulty_multiplier)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, muscle_group, is_compound, is_bodyweight, difficulty_multiplier`,
		e.Name, e.MuscleGroup, e.IsCompound, e.IsBodyweight, e.DifficultyMultiplier,
	).Scan(&e.ID, &e.MuscleGroup, &e.IsCompound, &e.IsBodyweight, &e.DifficultyMultiplier)
	if err != nil {
		return fmt.Errorf("upserting exercise: %w", err)
	}
	return nil
}

// InsertPlanDayExercise assigns an exercise to a plan day with its targets.
func (db *DB) InsertPlanDayExercise(ctx context.Context, pde *models.PlanDayExercise) error {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO plan_day_exercises (plan_day_id, exercise_id, exercise_order, target_sets, target_reps, default_reps, rpe_target)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		pde.PlanDayID, pde.ExerciseID, pde.Order, pde.TargetSets, pde.TargetReps, pde.DefaultReps, pde.RPETarget,
	).Scan(&pde.ID)
	if err != nil {
		return fmt.Errorf("inserting plan day exercise: %w", err)
	}
	return nil
}

// LinkProgression points the named exercise at its next harder variation.
func (db *DB) LinkProgression(ctx context.Context, exerciseID, nextID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET next_progression_id = $2 WHERE id = $1`,
		exerciseID, nextID)
	if err != nil {
		return fmt.Errorf("linking progression: %w", err)
	}
	return nil
}

// GetExerciseByName retrieves an exercise by its unique name, or nil if it
// does not exist.
func (db *DB) GetExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, muscle_group, is_compound, is_bodyweight, next_progression_id, difficulty_multiplier
		 FROM exercises WHERE name = $1`,
		name)

	var e models.Exercise
	err := row.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.IsCompound, &e.IsBodyweight,
		&e.NextProgressionID, &e.DifficultyMultiplier)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise by name: %w", err)
	}
	return &e, nil
}
