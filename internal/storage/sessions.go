package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/training"
)

const sessionColumns = `id, user_id, plan_day_id, started_at, ended_at, week_number, day_in_week, notes`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.UserID, &s.PlanDayID, &s.StartedAt, &s.EndedAt,
		&s.WeekNumber, &s.DayInWeek, &s.Notes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession inserts a new open session.
func (db *DB) CreateSession(ctx context.Context, userID, planDayID uuid.UUID, startedAt time.Time, weekNumber, dayInWeek int) (*models.Session, error) {
	s, err := scanSession(db.Pool.QueryRow(ctx,
		`INSERT INTO sessions (user_id, plan_day_id, started_at, week_number, day_in_week)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+sessionColumns,
		userID, planDayID, startedAt, weekNumber, dayInWeek))
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return s, nil
}

// GetSession retrieves a session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s, err := scanSession(db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return s, nil
}

// InProgressSession returns the user's open session started within the window,
// or nil if there is none.
func (db *DB) InProgressSession(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.Session, error) {
	s, err := scanSession(db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE user_id = $1 AND ended_at IS NULL AND started_at >= $2 AND started_at < $3
		 ORDER BY started_at DESC
		 LIMIT 1`,
		userID, start, end))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying in-progress session: %w", err)
	}
	return s, nil
}

// LatestCompletedSession returns the user's most recent completed session
// within the window, or nil if there is none.
func (db *DB) LatestCompletedSession(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.Session, error) {
	s, err := scanSession(db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE user_id = $1 AND ended_at IS NOT NULL AND started_at >= $2 AND started_at < $3
		 ORDER BY started_at DESC
		 LIMIT 1`,
		userID, start, end))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest completed session: %w", err)
	}
	return s, nil
}

// CountCompletedSessions counts completed sessions started within the window.
func (db *DB) CountCompletedSessions(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions
		 WHERE user_id = $1 AND ended_at IS NOT NULL AND started_at >= $2 AND started_at < $3`,
		userID, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting completed sessions: %w", err)
	}
	return count, nil
}

// CountCompletedSessionsTotal counts all of the user's completed sessions.
func (db *DB) CountCompletedSessionsTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1 AND ended_at IS NOT NULL`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting total sessions: %w", err)
	}
	return count, nil
}

// RecentCompletedSessions retrieves the user's most recent completed sessions,
// newest first.
func (db *DB) RecentCompletedSessions(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE user_id = $1 AND ended_at IS NOT NULL
		 ORDER BY started_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanDayID, &s.StartedAt, &s.EndedAt,
			&s.WeekNumber, &s.DayInWeek, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// EndSession marks the session ended if it is still open. The IS NULL guard
// makes concurrent end requests resolve to exactly one winner.
func (db *DB) EndSession(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, notes *string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sessions SET ended_at = $2, notes = COALESCE($3, notes)
		 WHERE id = $1 AND ended_at IS NULL`,
		sessionID, endedAt, notes)
	if err != nil {
		return false, fmt.Errorf("ending session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateSessionTimes rewrites the session's start and end timestamps.
func (db *DB) UpdateSessionTimes(ctx context.Context, sessionID uuid.UUID, startedAt, endedAt time.Time) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sessions SET started_at = $2, ended_at = $3 WHERE id = $1`,
		sessionID, startedAt, endedAt)
	if err != nil {
		return fmt.Errorf("updating session times: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

// UpdateSessionNotes replaces the session's notes.
func (db *DB) UpdateSessionNotes(ctx context.Context, sessionID uuid.UUID, notes *string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sessions SET notes = $2 WHERE id = $1`,
		sessionID, notes)
	if err != nil {
		return fmt.Errorf("updating session notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

// DeleteSession removes the session; its sets go with it via ON DELETE CASCADE.
func (db *DB) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}
