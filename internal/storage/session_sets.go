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

// InsertSet inserts a session set and fills in the generated ID and timestamp.
func (db *DB) InsertSet(ctx context.Context, set *models.SessionSet) error {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO session_sets (session_id, exercise_id, set_number, weight, reps, rpe, is_warmup)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		set.SessionID, set.ExerciseID, set.SetNumber, set.Weight, set.Reps, set.RPE, set.IsWarmup,
	).Scan(&set.ID, &set.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// GetSet retrieves a single set by ID.
func (db *DB) GetSet(ctx context.Context, id uuid.UUID) (*models.SessionSet, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, session_id, exercise_id, set_number, weight, reps, rpe, is_warmup, created_at
		 FROM session_sets WHERE id = $1`,
		id)

	var set models.SessionSet
	err := row.Scan(&set.ID, &set.SessionID, &set.ExerciseID, &set.SetNumber,
		&set.Weight, &set.Reps, &set.RPE, &set.IsWarmup, &set.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying set: %w", err)
	}
	return &set, nil
}

// CountSets counts all sets logged in a session, warmups included.
func (db *DB) CountSets(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM session_sets WHERE session_id = $1`,
		sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sets: %w", err)
	}
	return count, nil
}

// NonWarmupSetCounts counts working sets per exercise in a session.
func (db *DB) NonWarmupSetCounts(ctx context.Context, sessionID uuid.UUID) ([]models.ExerciseSetCount, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT ss.exercise_id, e.name, COUNT(*)
		 FROM session_sets ss
		 JOIN exercises e ON e.id = ss.exercise_id
		 WHERE ss.session_id = $1 AND NOT ss.is_warmup
		 GROUP BY ss.exercise_id, e.name
		 ORDER BY e.name`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("counting sets per exercise: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSetCount
	for rows.Next() {
		var c models.ExerciseSetCount
		if err := rows.Scan(&c.ExerciseID, &c.ExerciseName, &c.Sets); err != nil {
			return nil, fmt.Errorf("scanning set count: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// SessionSetsForXP retrieves the session's XP-eligible sets joined with
// exercise metadata, in logged order. Warmups and completion placeholders
// are excluded at the query.
func (db *DB) SessionSetsForXP(ctx context.Context, sessionID uuid.UUID) ([]models.SetWithExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT ss.exercise_id, e.muscle_group, e.is_bodyweight, e.difficulty_multiplier, ss.weight, ss.reps
		 FROM session_sets ss
		 JOIN exercises e ON e.id = ss.exercise_id
		 WHERE ss.session_id = $1 AND NOT ss.is_warmup
		 ORDER BY ss.created_at`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	var result []models.SetWithExercise
	for rows.Next() {
		var s models.SetWithExercise
		if err := rows.Scan(&s.ExerciseID, &s.MuscleGroup, &s.IsBodyweight,
			&s.DifficultyMultiplier, &s.Weight, &s.Reps); err != nil {
			return nil, fmt.Errorf("scanning session set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// PreviousSet returns the user's most recent working set for the exercise
// from any completed session other than the one being processed, or nil if
// the exercise has never been performed before.
func (db *DB) PreviousSet(ctx context.Context, userID, exerciseID, excludeSessionID uuid.UUID) (*models.SetRef, error) {
	var ref models.SetRef
	err := db.Pool.QueryRow(ctx,
		`SELECT ss.weight, ss.reps
		 FROM session_sets ss
		 JOIN sessions s ON s.id = ss.session_id
		 WHERE s.user_id = $1 AND ss.exercise_id = $2 AND ss.session_id <> $3
		   AND s.ended_at IS NOT NULL AND NOT ss.is_warmup
		 ORDER BY ss.created_at DESC
		 LIMIT 1`,
		userID, exerciseID, excludeSessionID).Scan(&ref.Weight, &ref.Reps)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying previous set: %w", err)
	}
	return &ref, nil
}

// UpdateSet rewrites a set's weight and reps.
func (db *DB) UpdateSet(ctx context.Context, setID uuid.UUID, weight float64, reps int) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE session_sets SET weight = $2, reps = $3 WHERE id = $1`,
		setID, weight, reps)
	if err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

// DeleteSet removes a single set.
func (db *DB) DeleteSet(ctx context.Context, setID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM session_sets WHERE id = $1`, setID)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

// SessionSets retrieves every set logged in a session, in logged order.
func (db *DB) SessionSets(ctx context.Context, sessionID uuid.UUID) ([]models.SessionSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, session_id, exercise_id, set_number, weight, reps, rpe, is_warmup, created_at
		 FROM session_sets
		 WHERE session_id = $1
		 ORDER BY created_at`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	var result []models.SessionSet
	for rows.Next() {
		var s models.SessionSet
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber,
			&s.Weight, &s.Reps, &s.RPE, &s.IsWarmup, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// HasCompletionPlaceholder reports whether the track-later placeholder row
// exists for the exercise in the session.
func (db *DB) HasCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM session_sets
		   WHERE session_id = $1 AND exercise_id = $2 AND set_number = 0 AND is_warmup
		 )`,
		sessionID, exerciseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking completion placeholder: %w", err)
	}
	return exists, nil
}

// InsertCompletionPlaceholder writes the track-later placeholder row.
func (db *DB) InsertCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO session_sets (session_id, exercise_id, set_number, weight, reps, is_warmup)
		 VALUES ($1, $2, 0, 0, 0, true)`,
		sessionID, exerciseID)
	if err != nil {
		return fmt.Errorf("inserting completion placeholder: %w", err)
	}
	return nil
}

// DeleteCompletionPlaceholder removes the track-later placeholder row,
// leaving any logged sets untouched.
func (db *DB) DeleteCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM session_sets
		 WHERE session_id = $1 AND exercise_id = $2 AND set_number = 0 AND is_warmup`,
		sessionID, exerciseID)
	if err != nil {
		return fmt.Errorf("deleting completion placeholder: %w", err)
	}
	return nil
}
