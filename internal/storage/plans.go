package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/training"
)

// GetPlan retrieves a plan by ID.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, type, total_weeks, days_per_week, is_template, created_at
		 FROM plans WHERE id = $1`,
		id)

	var p models.Plan
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.TotalWeeks,
		&p.DaysPerWeek, &p.IsTemplate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	return &p, nil
}

// ListPlans retrieves all plan templates.
func (db *DB) ListPlans(ctx context.Context) ([]models.Plan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, type, total_weeks, days_per_week, is_template, created_at
		 FROM plans WHERE is_template ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.TotalWeeks,
			&p.DaysPerWeek, &p.IsTemplate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// CountDistinctPlanDays counts the distinct day numbers configured for a plan.
// Plans with week variants repeat day numbers across variants, so this is the
// true training frequency, not the row count.
func (db *DB) CountDistinctPlanDays(ctx context.Context, planID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT day_number) FROM plan_days WHERE plan_id = $1`,
		planID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting plan days: %w", err)
	}
	return count, nil
}

// GetPlanDay retrieves a plan day by ID.
func (db *DB) GetPlanDay(ctx context.Context, id uuid.UUID) (*models.PlanDay, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, plan_id, day_number, name, week_variant FROM plan_days WHERE id = $1`,
		id)

	var d models.PlanDay
	err := row.Scan(&d.ID, &d.PlanID, &d.DayNumber, &d.Name, &d.WeekVariant)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan day: %w", err)
	}
	return &d, nil
}

// GetPlanDayByNumber retrieves the plan day with the given day number,
// preferring the lowest week variant.
func (db *DB) GetPlanDayByNumber(ctx context.Context, planID uuid.UUID, dayNumber int) (*models.PlanDay, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, plan_id, day_number, name, week_variant
		 FROM plan_days
		 WHERE plan_id = $1 AND day_number = $2
		 ORDER BY week_variant
		 LIMIT 1`,
		planID, dayNumber)

	var d models.PlanDay
	err := row.Scan(&d.ID, &d.PlanID, &d.DayNumber, &d.Name, &d.WeekVariant)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan day by number: %w", err)
	}
	return &d, nil
}

// GetPlanDayExercises retrieves the exercises configured for a plan day,
// joined with their exercise metadata, in configured order.
func (db *DB) GetPlanDayExercises(ctx context.Context, planDayID uuid.UUID) ([]models.PlanDayExerciseDetail, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.id, e.name, e.muscle_group, e.is_bodyweight,
		 pde.exercise_order, pde.target_sets, pde.target_reps, pde.default_reps, pde.rpe_target
		 FROM plan_day_exercises pde
		 JOIN exercises e ON e.id = pde.exercise_id
		 WHERE pde.plan_day_id = $1
		 ORDER BY pde.exercise_order`,
		planDayID)
	if err != nil {
		return nil, fmt.Errorf("querying plan day exercises: %w", err)
	}
	defer rows.Close()

	var result []models.PlanDayExerciseDetail
	for rows.Next() {
		var d models.PlanDayExerciseDetail
		if err := rows.Scan(&d.ExerciseID, &d.Name, &d.MuscleGroup, &d.IsBodyweight,
			&d.Order, &d.TargetSets, &d.TargetReps, &d.DefaultReps, &d.RPETarget); err != nil {
			return nil, fmt.Errorf("scanning plan day exercise: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
