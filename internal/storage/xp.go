package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/gamification"
	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/training"
)

// ApplyXPGrants records the session's XP in one transaction: an audit row per
// grant plus an additive upsert of the muscle group total. The upsert adds to
// the stored total rather than writing a computed value, so concurrent grants
// to the same muscle group both land.
func (db *DB) ApplyXPGrants(ctx context.Context, userID, sessionID uuid.UUID, grants []training.XPGrant) error {
	if len(grants) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning xp transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, g := range grants {
		_, err := tx.Exec(ctx,
			`INSERT INTO xp_transactions (user_id, session_id, muscle_group, base_xp, progression_bonus, total_xp)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, sessionID, g.MuscleGroup, g.BaseXP, g.ProgressionBonus, g.TotalXP)
		if err != nil {
			return fmt.Errorf("inserting xp transaction: %w", err)
		}

		var total int
		err = tx.QueryRow(ctx,
			`INSERT INTO muscle_group_xp (user_id, muscle_group, total_xp, current_level)
			 VALUES ($1, $2, $3, 1)
			 ON CONFLICT (user_id, muscle_group) DO UPDATE
			   SET total_xp = muscle_group_xp.total_xp + EXCLUDED.total_xp, updated_at = now()
			 RETURNING total_xp`,
			userID, g.MuscleGroup, g.TotalXP).Scan(&total)
		if err != nil {
			return fmt.Errorf("updating muscle group xp: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE muscle_group_xp SET current_level = $3
			 WHERE user_id = $1 AND muscle_group = $2`,
			userID, g.MuscleGroup, gamification.LevelForXP(total))
		if err != nil {
			return fmt.Errorf("updating muscle group level: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// MuscleGroupXP retrieves the user's cumulative totals per muscle group.
func (db *DB) MuscleGroupXP(ctx context.Context, userID uuid.UUID) ([]models.MuscleGroupXP, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, muscle_group, total_xp, current_level, updated_at
		 FROM muscle_group_xp
		 WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying muscle group xp: %w", err)
	}
	defer rows.Close()

	var result []models.MuscleGroupXP
	for rows.Next() {
		var m models.MuscleGroupXP
		if err := rows.Scan(&m.ID, &m.UserID, &m.MuscleGroup, &m.TotalXP,
			&m.CurrentLevel, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning muscle group xp: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// SessionXPSummaries retrieves per-session volume and XP totals for the
// user's most recent completed sessions, newest first. Volume is the summed
// base XP of the session's transactions, not raw weight*reps, so bodyweight
// work counts; sessions that granted no XP are omitted.
func (db *DB) SessionXPSummaries(ctx context.Context, userID uuid.UUID, limit int) ([]training.SessionXPSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.started_at,
		   SUM(xt.base_xp)::int,
		   SUM(xt.total_xp)::int
		 FROM sessions s
		 JOIN xp_transactions xt ON xt.session_id = s.id
		 WHERE s.user_id = $1 AND s.ended_at IS NOT NULL
		 GROUP BY s.id, s.started_at
		 ORDER BY s.started_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying session xp summaries: %w", err)
	}
	defer rows.Close()

	var result []training.SessionXPSummary
	for rows.Next() {
		var s training.SessionXPSummary
		if err := rows.Scan(&s.SessionID, &s.Date, &s.Volume, &s.XPGained); err != nil {
			return nil, fmt.Errorf("scanning session xp summary: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
