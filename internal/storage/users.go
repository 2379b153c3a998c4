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

const userColumns = `id, email, name, created_at, current_plan_id, plan_start_date,
	 weight_unit, track_later_enabled, default_rest_seconds`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.CurrentPlanID,
		&u.PlanStartDate, &u.WeightUnit, &u.TrackLaterEnabled, &u.DefaultRestSeconds)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetOrCreateUser finds or creates a user by email. Updates the display name
// on each call so an identity provider rename propagates.
func (db *DB) GetOrCreateUser(ctx context.Context, email, displayName string) (*models.User, error) {
	return scanUser(db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
			SET name = COALESCE(NULLIF($2, ''), users.name)
		RETURNING `+userColumns, email, displayName))
}

// AssignPlan sets the user's active plan and the date the program started.
func (db *DB) AssignPlan(ctx context.Context, userID, planID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET current_plan_id = $2, plan_start_date = now() WHERE id = $1`,
		userID, planID)
	if err != nil {
		return fmt.Errorf("assigning plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

// UpdatePreferences updates the user's tracking preferences.
func (db *DB) UpdatePreferences(ctx context.Context, userID uuid.UUID, weightUnit string, trackLater bool, restSeconds int) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET weight_unit = $2, track_later_enabled = $3, default_rest_seconds = $4
		 WHERE id = $1`,
		userID, weightUnit, trackLater, restSeconds)
	if err != nil {
		return fmt.Errorf("updating preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}
